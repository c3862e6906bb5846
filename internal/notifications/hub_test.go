package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub(nil)

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)

	assert.True(t, hub.IsOnline(10))
	assert.False(t, hub.IsOnline(11))

	hub.Broadcast(10, `{"type":"direct_message"}`)

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"type":"direct_message"}`, string(msg))
		default:
			t.Fatal("expected a queued message")
		}
	}

	// Broadcasting to an offline user is a no-op.
	hub.Broadcast(11, "ignored")
}

func TestHub_UnregisterClient(t *testing.T) {
	hub := NewHub(nil)

	client, err := hub.Register(10, nil)
	require.NoError(t, err)
	require.True(t, hub.IsOnline(10))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))
	assert.Empty(t, hub.Online())

	// Unregistering twice must not corrupt counters.
	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(10))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub(nil)

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(10, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(10, nil)
	assert.Error(t, err)

	// Other users are unaffected.
	_, err = hub.Register(11, nil)
	assert.NoError(t, err)
}

func TestHub_Online(t *testing.T) {
	hub := NewHub(nil)

	_, err := hub.Register(1, nil)
	require.NoError(t, err)
	_, err = hub.Register(2, nil)
	require.NoError(t, err)

	online := hub.Online()
	assert.ElementsMatch(t, []uint{1, 2}, online)
}

func TestHub_ShutdownClearsConnections(t *testing.T) {
	hub := NewHub(nil)

	_, err := hub.Register(1, nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.False(t, hub.IsOnline(1))
	assert.Empty(t, hub.Online())
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub(nil)
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	// Fill the buffer without a reader.
	for i := 0; i < cap(client.Send); i++ {
		client.Send <- []byte("x")
	}

	// Must not block; the message and the drop notice are both discarded.
	client.TrySend([]byte("overflow"))
	assert.Len(t, client.Send, cap(client.Send))

	// Once the reader drains a slot, the next overflow queues a drop notice.
	<-client.Send
	client.TrySend([]byte("overflow again")) // fills the free slot
	<-client.Send
	client.TrySend([]byte("one more")) // fits directly

	var last []byte
	for len(client.Send) > 0 {
		last = <-client.Send
	}
	assert.Equal(t, "one more", string(last))
}

func TestClient_TrySendSurvivesClosedChannel(t *testing.T) {
	hub := NewHub(nil)
	client, err := hub.Register(1, nil)
	require.NoError(t, err)

	close(client.Send)
	assert.NotPanics(t, func() {
		client.TrySend([]byte("late message"))
	})
}
