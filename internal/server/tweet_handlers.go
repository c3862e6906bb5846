package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateTweet handles POST /api/tweets.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req struct {
		TextContent  string `json:"text_content"`
		MediaContent string `json:"media_content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.PostTweet(c.Context(), service.PostTweetInput{
		UserID:       currentUserID(c),
		TextContent:  req.TextContent,
		MediaContent: req.MediaContent,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tweet.ToView())
}

// GetTweet handles GET /api/tweets/:id.
func (s *Server) GetTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tweet, err := s.tweetService.GetTweet(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tweet.ToView())
}

// DeleteTweet handles DELETE /api/tweets/:id.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.tweetService.DeleteTweet(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetHomeFeed handles GET /api/tweets/feed.
func (s *Server) GetHomeFeed(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	tweets, err := s.tweetService.ListHomeFeed(c.Context(), currentUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tweets": models.TweetViews(tweets)})
}
