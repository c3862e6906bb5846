package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// GroupService provides group membership business logic.
type GroupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo, userRepo: userRepo}
}

// CreateGroup creates a group and enrolls the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, name string, creatorID uint) (*models.Group, error) {
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.userRepo.GetByID(ctx, creatorID); err != nil {
		return nil, err
	}

	group := &models.Group{Name: name}
	if err := s.groupRepo.Create(ctx, group, creatorID); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup returns the group by id.
func (s *GroupService) GetGroup(ctx context.Context, groupID uint) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID)
}

// AddMember enrolls a user in a group; ALREADY_MEMBER on duplicate.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.groupRepo.AddMember(ctx, &models.GroupMember{UserID: userID, GroupID: groupID})
}

// RemoveMember removes a user from a group; NOT_MEMBER if not enrolled.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID uint) error {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return err
	}
	return s.groupRepo.RemoveMember(ctx, groupID, userID)
}

// ListMembers returns group members in join order.
func (s *GroupService) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID)
}

// ListUserGroups returns groups the user belongs to.
func (s *GroupService) ListUserGroups(ctx context.Context, userID uint) ([]models.Group, error) {
	return s.groupRepo.ListUserGroups(ctx, userID)
}
