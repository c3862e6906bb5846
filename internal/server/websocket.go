package server

import (
	"encoding/json"

	"warbler/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles GET /api/ws. The endpoint is push-only: the hub
// delivers message events published through Redis; client frames only keep
// the connection alive.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"realtime delivery unavailable"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Warn("websocket register", "error", err, "user_id", userID)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		welcome, _ := json.Marshal(map[string]any{
			"type":    "connected",
			"payload": map[string]any{"user_id": userID},
		})
		client.TrySend(welcome)

		go client.WritePump()

		// Read pump runs in the handler goroutine (blocking).
		client.ReadPump()
	})
}
