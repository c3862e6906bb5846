package repository

import (
	"context"

	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository defines the interface for like/retweet/reply/view operations
type EngagementRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, userID, tweetID uint) error
	CreateRetweet(ctx context.Context, retweet *models.Retweet) error
	DeleteRetweet(ctx context.Context, userID, tweetID uint) error
	CreateReply(ctx context.Context, reply *models.Reply) error
	ListReplies(ctx context.Context, tweetID uint, limit, offset int) ([]models.Reply, error)
	RecordView(ctx context.Context, view *models.View) error
}

// engagementRepository implements EngagementRepository
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Tweet already liked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *engagementRepository) DeleteLike(ctx context.Context, userID, tweetID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Like", tweetID)
	}
	return nil
}

func (r *engagementRepository) CreateRetweet(ctx context.Context, retweet *models.Retweet) error {
	if err := r.db.WithContext(ctx).Create(retweet).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Tweet already retweeted")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *engagementRepository) DeleteRetweet(ctx context.Context, userID, tweetID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Retweet{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Retweet", tweetID)
	}
	return nil
}

func (r *engagementRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *engagementRepository) ListReplies(ctx context.Context, tweetID uint, limit, offset int) ([]models.Reply, error) {
	var replies []models.Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("tweet_id = ?", tweetID).
		Order("replied_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&replies).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}

// RecordView inserts an impression row; repeated views of the same tweet by
// the same user are a silent no-op.
func (r *engagementRepository) RecordView(ctx context.Context, view *models.View) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tweet_id"}},
			DoNothing: true,
		}).
		Create(view).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
