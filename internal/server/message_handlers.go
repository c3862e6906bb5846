package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages. Exactly one of receiver_id and
// group_id must be set.
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID *uint  `json:"receiver_id"`
		GroupID    *uint  `json:"group_id"`
		Content    string `json:"content"`
		MediaURL   string `json:"media_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if (req.ReceiverID == nil) == (req.GroupID == nil) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Exactly one of receiver_id and group_id is required"))
	}

	var to service.Recipient
	if req.ReceiverID != nil {
		to = service.DirectTo(*req.ReceiverID)
	} else {
		to = service.InGroup(*req.GroupID)
	}

	msg, err := s.messageService.SendMessage(c.Context(), service.SendMessageInput{
		SenderID: currentUserID(c),
		To:       to,
		Content:  req.Content,
		MediaURL: req.MediaURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetConversation handles GET /api/messages/with/:userId.
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := parseID(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := parsePagination(c)
	msgs, err := s.messageService.ListConversation(c.Context(), currentUserID(c), otherID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": msgs})
}

// ReactToMessage handles POST /api/messages/:id/reactions.
func (s *Server) ReactToMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.messageService.React(c.Context(), id, currentUserID(c), req.Emoji); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// RemoveReaction handles DELETE /api/messages/:id/reactions.
func (s *Server) RemoveReaction(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.messageService.RemoveReaction(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkMessageRead handles POST /api/messages/:id/read.
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.messageService.MarkRead(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUnreadCount handles GET /api/messages/unread/count.
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.messageService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"unread": count})
}

// DeleteMessageForMe handles DELETE /api/messages/:id. The message
// disappears only for the requesting user.
func (s *Server) DeleteMessageForMe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.messageService.DeleteForUser(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
