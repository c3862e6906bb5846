// Package notifications provides realtime message delivery over Redis
// pub/sub and websockets.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"

	"warbler/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes message events into Redis channels. A nil Redis client
// turns every publish into a no-op so the server runs without Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier backed by the given Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Event is the wire envelope pushed to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// PublishToUser sends an event to a user's channel. Delivery is best-effort.
func (n *Notifier) PublishToUser(ctx context.Context, userID uint, eventType string, payload any) {
	n.publish(ctx, UserChannel(userID), eventType, payload)
}

// PublishToGroup sends an event to a group's channel. Delivery is best-effort.
func (n *Notifier) PublishToGroup(ctx context.Context, groupID uint, eventType string, payload any) {
	n.publish(ctx, GroupChannel(groupID), eventType, payload)
}

func (n *Notifier) publish(ctx context.Context, channel, eventType string, payload any) {
	if n.rdb == nil {
		return
	}
	b, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "marshal realtime event", "error", err, "channel", channel)
		return
	}
	if err := n.rdb.Publish(ctx, channel, string(b)).Err(); err != nil {
		middleware.Logger.ErrorContext(ctx, "publish realtime event", "error", err, "channel", channel)
		return
	}
	middleware.RealtimeEvents.WithLabelValues(eventType).Inc()
}

// StartSubscriber subscribes to the user and group event patterns and calls
// onMessage for each incoming message.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "events:user:*", "events:group:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("panic in event subscriber", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "events:user:" + strconv.FormatUint(uint64(userID), 10)
}

// GroupChannel derives the Redis channel name for a group.
func GroupChannel(groupID uint) string {
	return "events:group:" + strconv.FormatUint(uint64(groupID), 10)
}
