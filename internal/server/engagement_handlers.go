package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LikeTweet handles POST /api/tweets/:id/like.
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.engagementService.Like(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnlikeTweet handles DELETE /api/tweets/:id/like.
func (s *Server) UnlikeTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.engagementService.Unlike(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RetweetTweet handles POST /api/tweets/:id/retweet.
func (s *Server) RetweetTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.engagementService.Retweet(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnretweetTweet handles DELETE /api/tweets/:id/retweet.
func (s *Server) UnretweetTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.engagementService.Unretweet(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateReply handles POST /api/tweets/:id/replies.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		TextContent  string `json:"text_content"`
		MediaContent string `json:"media_content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.engagementService.Reply(c.Context(), service.ReplyInput{
		UserID:       currentUserID(c),
		TweetID:      id,
		TextContent:  req.TextContent,
		MediaContent: req.MediaContent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// GetReplies handles GET /api/tweets/:id/replies.
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := parsePagination(c)
	replies, err := s.engagementService.ListReplies(c.Context(), id, limit, offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"replies": replies})
}

// RecordTweetView handles POST /api/tweets/:id/view. Repeat views are
// accepted and ignored.
func (s *Server) RecordTweetView(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.engagementService.RecordView(c.Context(), currentUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
