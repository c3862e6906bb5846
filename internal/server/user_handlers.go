package server

import (
	"warbler/internal/models"
	"warbler/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAllUsers handles GET /api/users.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := s.userService.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		FullName        string `json:"full_name"`
		Bio             string `json:"bio"`
		ProfileImageURL string `json:"profile_image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:          currentUserID(c),
		FullName:        req.FullName,
		Bio:             req.Bio,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me. Everything the user owns
// goes with the account.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserTweets handles GET /api/users/:id/tweets.
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := parsePagination(c)
	tweets, err := s.tweetService.ListUserTweets(c.Context(), id, limit, offset, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"tweets": models.TweetViews(tweets)})
}
