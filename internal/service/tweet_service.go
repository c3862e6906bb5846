package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// TweetService provides timeline business logic.
type TweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

// PostTweetInput is the input for posting a tweet.
type PostTweetInput struct {
	UserID       uint
	TextContent  string
	MediaContent string
}

// NewTweetService returns a new TweetService.
func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

// PostTweet creates a tweet for the user.
func (s *TweetService) PostTweet(ctx context.Context, in PostTweetInput) (*models.Tweet, error) {
	if err := validation.ValidateTweetText(in.TextContent); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	tweet := &models.Tweet{
		UserID:       in.UserID,
		TextContent:  in.TextContent,
		MediaContent: in.MediaContent,
	}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}

	cache.InvalidateFeed(ctx, in.UserID)

	return s.tweetRepo.GetByID(ctx, tweet.ID, in.UserID)
}

// GetTweet returns the tweet with engagement counts computed for the viewer.
func (s *TweetService) GetTweet(ctx context.Context, tweetID, viewerID uint) (*models.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, tweetID, viewerID)
}

// DeleteTweet removes the tweet. Only the author may delete; likes,
// retweets, views and replies go with it.
func (s *TweetService) DeleteTweet(ctx context.Context, tweetID, requesterID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID, requesterID)
	if err != nil {
		return err
	}
	if tweet.UserID != requesterID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	if err := s.tweetRepo.Delete(ctx, tweetID); err != nil {
		return err
	}

	cache.InvalidateTweet(ctx, tweetID)
	cache.InvalidateFeed(ctx, requesterID)
	return nil
}

// ListUserTweets returns a user's tweets, newest first.
func (s *TweetService) ListUserTweets(ctx context.Context, userID uint, limit, offset int, viewerID uint) ([]*models.Tweet, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByUser(ctx, userID, limit, offset, viewerID)
}

// ListHomeFeed returns the user's own tweets plus tweets from followed
// users, newest first. Tweets from users blocked in either direction are
// suppressed. Only the first page is cached; the liked flag and counts are
// viewer-specific so the key is per user.
func (s *TweetService) ListHomeFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Tweet, error) {
	if offset != 0 {
		return s.tweetRepo.ListHomeFeed(ctx, userID, limit, offset)
	}

	var tweets []*models.Tweet
	err := cache.Aside(ctx, cache.FeedKey(userID), &tweets, cache.FeedTTL, func() error {
		var ferr error
		tweets, ferr = s.tweetRepo.ListHomeFeed(ctx, userID, limit, offset)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return tweets, nil
}
