package repository

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group and membership operations
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group, creatorID uint) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	AddMember(ctx context.Context, member *models.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID uint) error
	IsMember(ctx context.Context, groupID, userID uint) (bool, error)
	ListMembers(ctx context.Context, groupID uint) ([]models.User, error)
	ListUserGroups(ctx context.Context, userID uint) ([]models.Group, error)
}

// groupRepository implements GroupRepository
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// Create inserts the group and enrolls its creator as the first member in
// one transaction, so no group can exist without a member.
func (r *groupRepository) Create(ctx context.Context, group *models.Group, creatorID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMember{UserID: creatorID, GroupID: group.ID}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Group name already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Group", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &group, nil
}

func (r *groupRepository) AddMember(ctx context.Context, member *models.GroupMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyMemberError("User is already a member of this group")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotMemberError("User is not a member of this group")
	}
	return nil
}

func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *groupRepository) ListMembers(ctx context.Context, groupID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN group_members gm ON users.id = gm.user_id").
		Where("gm.group_id = ?", groupID).
		Order("gm.joined_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *groupRepository) ListUserGroups(ctx context.Context, userID uint) ([]models.Group, error) {
	var groups []models.Group
	err := r.db.WithContext(ctx).
		Table("groups").
		Joins("JOIN group_members gm ON groups.id = gm.group_id").
		Where("gm.user_id = ?", userID).
		Order("gm.joined_at ASC").
		Find(&groups).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return groups, nil
}
