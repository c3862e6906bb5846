package server

import (
	"warbler/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateGroup handles POST /api/groups.
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	group, err := s.groupService.CreateGroup(c.Context(), req.Name, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroup handles GET /api/groups/:id.
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	group, err := s.groupService.GetGroup(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(group)
}

// GetMyGroups handles GET /api/groups/me.
func (s *Server) GetMyGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListUserGroups(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// JoinGroup handles POST /api/groups/:id/members. The body may name
// another user to add; with no body the requester joins.
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	_ = c.BodyParser(&req)
	userID := req.UserID
	if userID == 0 {
		userID = currentUserID(c)
	}

	if err := s.groupService.AddMember(c.Context(), id, userID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// LeaveGroup handles DELETE /api/groups/:id/members/me.
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := s.groupService.RemoveMember(c.Context(), id, currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetGroupMembers handles GET /api/groups/:id/members.
func (s *Server) GetGroupMembers(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	members, err := s.groupService.ListMembers(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"members": members})
}

// GetGroupMessages handles GET /api/groups/:id/messages.
func (s *Server) GetGroupMessages(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := parsePagination(c)
	msgs, err := s.messageService.ListGroupMessages(c.Context(), id, currentUserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"messages": msgs})
}
