package repository

import (
	"context"
	"errors"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Tweet, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Tweet, error)
	ListHomeFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Tweet, error)
	Delete(ctx context.Context, id uint) error
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// applyTweetDetails selects the computed engagement columns alongside the
// tweet row. currentUserID 0 means an anonymous read (liked is always false).
func (r *tweetRepository) applyTweetDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	return db.Model(&models.Tweet{}).Select(`tweets.*,
		(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count,
		(SELECT COUNT(*) FROM replies WHERE replies.tweet_id = tweets.id) AS replies_count,
		(SELECT COUNT(*) FROM retweets WHERE retweets.tweet_id = tweets.id) AS retweets_count,
		(SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id AND likes.user_id = ?) > 0 AS liked`,
		currentUserID)
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		First(&tweet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tweet, nil
}

func (r *tweetRepository) ListByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Where("tweets.user_id = ?", userID).
		Order("tweets.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

// ListHomeFeed returns the newest tweets from the user and everyone they
// follow, excluding authors in a block relation with the viewer in either
// direction.
func (r *tweetRepository) ListHomeFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Tweet, error) {
	var tweets []*models.Tweet
	err := r.applyTweetDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Where(`(tweets.user_id = ? OR tweets.user_id IN (
			SELECT following_id FROM followers WHERE follower_id = ?))`, userID, userID).
		Where(`tweets.user_id NOT IN (
			SELECT blocked_id FROM blocks WHERE blocker_id = ?
			UNION
			SELECT blocker_id FROM blocks WHERE blocked_id = ?)`, userID, userID).
		Order("tweets.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tweets, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Tweet{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tweet", id)
	}
	return nil
}
