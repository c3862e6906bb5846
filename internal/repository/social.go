package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// SocialRepository defines the interface for follow and block edge operations
type SocialRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follower) error
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.User, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	CreateBlock(ctx context.Context, block *models.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedID uint) error
	IsBlockedEither(ctx context.Context, userID1, userID2 uint) (bool, error)
}

// socialRepository implements SocialRepository
type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social graph repository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func (r *socialRepository) CreateFollow(ctx context.Context, follow *models.Follower) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Already following this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follower{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Follow", followingID)
	}
	return nil
}

func (r *socialRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN followers f ON users.id = f.follower_id").
		Where("f.following_id = ?", userID).
		Order("f.followed_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *socialRepository) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN followers f ON users.id = f.following_id").
		Where("f.follower_id = ?", userID).
		Order("f.followed_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follower{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// CreateBlock inserts the block edge and severs any follow relationship
// between the pair in both directions, in one transaction.
func (r *socialRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(block).Error; err != nil {
			return err
		}
		return tx.
			Where("(follower_id = ? AND following_id = ?) OR (follower_id = ? AND following_id = ?)",
				block.BlockerID, block.BlockedID, block.BlockedID, block.BlockerID).
			Delete(&models.Follower{}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Already blocking this user")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *socialRepository) DeleteBlock(ctx context.Context, blockerID, blockedID uint) error {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Block", blockedID)
	}
	return nil
}

func (r *socialRepository) IsBlockedEither(ctx context.Context, userID1, userID2 uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userID1, userID2, userID2, userID1).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
