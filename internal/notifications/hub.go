package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"warbler/internal/middleware"

	"github.com/gofiber/websocket/v2"
)

const (
	maxConnsPerUser = 8
	maxTotalConns   = 10000
)

// GroupMembersFunc resolves the user IDs of a group's members so group
// events can fan out to connected members.
type GroupMembersFunc func(ctx context.Context, groupID uint) ([]uint, error)

// Hub maps userID to active websocket clients and fans out Redis events.
type Hub struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int
	shutdown   chan struct{}

	groupMembers GroupMembersFunc
}

// NewHub creates a Hub. groupMembers may be nil, in which case group events
// are dropped.
func NewHub(groupMembers GroupMembersFunc) *Hub {
	return &Hub{
		conns:        make(map[uint]map[*Client]struct{}),
		shutdown:     make(chan struct{}),
		groupMembers: groupMembers,
	}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "event hub" }

// Register adds a connection for the user. Returns an error when the user
// or server connection limit is exceeded.
func (h *Hub) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}

	m, ok := h.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[userID] = m
	}
	if len(m) >= maxConnsPerUser {
		return nil, errors.New("user connection limit reached")
	}

	client := NewClient(h, conn, userID)
	m[client] = struct{}{}
	h.totalConns++
	middleware.WebSocketConnections.Inc()

	return client, nil
}

// UnregisterClient removes a client from the hub.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.conns[client.UserID]; ok {
		if _, exists := m[client]; exists {
			delete(m, client)
			h.totalConns--
			middleware.WebSocketConnections.Dec()
		}
		if len(m) == 0 {
			delete(h.conns, client.UserID)
		}
	}
}

// Broadcast sends the message to all connections for userID.
func (h *Hub) Broadcast(userID uint, message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.conns[userID]; ok {
		data := []byte(message)
		for c := range clients {
			c.TrySend(data)
		}
	}
}

// IsOnline reports whether a user has at least one active connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients, ok := h.conns[userID]
	return ok && len(clients) > 0
}

// StartWiring connects the Notifier to this hub: it subscribes to the Redis
// event patterns and forwards payloads to matching connections. Group
// events fan out to every connected member.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartSubscriber(ctx, func(channel, payload string) {
		switch {
		case strings.HasPrefix(channel, "events:user:"):
			var userID uint
			if _, err := fmt.Sscanf(channel, "events:user:%d", &userID); err != nil {
				middleware.Logger.Warn("invalid event channel", "channel", channel)
				return
			}
			h.Broadcast(userID, payload)
		case strings.HasPrefix(channel, "events:group:"):
			var groupID uint
			if _, err := fmt.Sscanf(channel, "events:group:%d", &groupID); err != nil {
				middleware.Logger.Warn("invalid event channel", "channel", channel)
				return
			}
			if h.groupMembers == nil {
				return
			}
			members, err := h.groupMembers(ctx, groupID)
			if err != nil {
				middleware.Logger.Error("resolve group members", "error", err, "group_id", groupID)
				return
			}
			for _, userID := range members {
				h.Broadcast(userID, payload)
			}
		default:
			middleware.Logger.Warn("invalid event channel", "channel", channel)
		}
	})
}

// Shutdown closes all websocket connections.
func (h *Hub) Shutdown(_ context.Context) error {
	close(h.shutdown)

	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, userConns := range h.conns {
		for client := range userConns {
			if client.Conn == nil {
				continue
			}
			if err := client.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "Server shutting down")); err != nil {
				middleware.Logger.Warn("write close message", "error", err, "user_id", userID)
			}
			if err := client.Conn.Close(); err != nil {
				middleware.Logger.Warn("close websocket", "error", err, "user_id", userID)
			}
		}
	}
	h.conns = make(map[uint]map[*Client]struct{})
	h.totalConns = 0

	return nil
}

// Online returns the IDs of users with active connections; used by tests
// and the health endpoint.
func (h *Hub) Online() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uint, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	return ids
}
