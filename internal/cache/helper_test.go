package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		in := cachedUser{ID: 1, Username: "warble"}
		require.NoError(t, SetJSON(ctx, UserKey(1), in, UserTTL))

		var out cachedUser
		found, err := GetJSON(ctx, UserKey(1), &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, in, out)
	})

	t.Run("miss", func(t *testing.T) {
		var out cachedUser
		found, err := GetJSON(ctx, UserKey(999), &out)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestGetSetJSON_NilClientDegrades(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, "k", cachedUser{ID: 1}, time.Minute))

	var out cachedUser
	found, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	t.Run("miss populates the cache", func(t *testing.T) {
		fetches := 0
		var got cachedUser
		fetch := func() error {
			fetches++
			got = cachedUser{ID: 2, Username: "cached"}
			return nil
		}

		require.NoError(t, Aside(ctx, UserKey(2), &got, UserTTL, fetch))
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "cached", got.Username)

		// Second read is served from Redis.
		var again cachedUser
		require.NoError(t, Aside(ctx, UserKey(2), &again, UserTTL, fetch))
		assert.Equal(t, 1, fetches)
		assert.Equal(t, "cached", again.Username)
	})

	t.Run("fetch error propagates and nothing is stored", func(t *testing.T) {
		sentinel := errors.New("db down")
		var got cachedUser
		err := Aside(ctx, UserKey(3), &got, UserTTL, func() error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
		assert.False(t, mr.Exists(UserKey(3)))
	})
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedKey(1), []cachedUser{{ID: 1}}, FeedTTL))
	require.True(t, mr.Exists(FeedKey(1)))

	InvalidateFeed(ctx, 1)
	assert.False(t, mr.Exists(FeedKey(1)))
}
