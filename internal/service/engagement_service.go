package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// EngagementService provides like, retweet, reply and view business logic.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	tweetRepo      repository.TweetRepository
}

// ReplyInput is the input for replying to a tweet.
type ReplyInput struct {
	UserID       uint
	TweetID      uint
	TextContent  string
	MediaContent string
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(engagementRepo repository.EngagementRepository, tweetRepo repository.TweetRepository) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo, tweetRepo: tweetRepo}
}

// Like records a like; DUPLICATE if the user already liked the tweet.
func (s *EngagementService) Like(ctx context.Context, userID, tweetID uint) error {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, userID); err != nil {
		return err
	}
	if err := s.engagementRepo.CreateLike(ctx, &models.Like{UserID: userID, TweetID: tweetID}); err != nil {
		return err
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

// Unlike removes a like; NOT_FOUND if none exists.
func (s *EngagementService) Unlike(ctx context.Context, userID, tweetID uint) error {
	if err := s.engagementRepo.DeleteLike(ctx, userID, tweetID); err != nil {
		return err
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

// Retweet records a retweet; DUPLICATE if already retweeted.
func (s *EngagementService) Retweet(ctx context.Context, userID, tweetID uint) error {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, userID); err != nil {
		return err
	}
	if err := s.engagementRepo.CreateRetweet(ctx, &models.Retweet{UserID: userID, TweetID: tweetID}); err != nil {
		return err
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

// Unretweet removes a retweet; NOT_FOUND if none exists.
func (s *EngagementService) Unretweet(ctx context.Context, userID, tweetID uint) error {
	if err := s.engagementRepo.DeleteRetweet(ctx, userID, tweetID); err != nil {
		return err
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

// Reply posts a reply to a tweet.
func (s *EngagementService) Reply(ctx context.Context, in ReplyInput) (*models.Reply, error) {
	if err := validation.ValidateTweetText(in.TextContent); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if _, err := s.tweetRepo.GetByID(ctx, in.TweetID, in.UserID); err != nil {
		return nil, err
	}

	reply := &models.Reply{
		UserID:       in.UserID,
		TweetID:      in.TweetID,
		TextContent:  in.TextContent,
		MediaContent: in.MediaContent,
	}
	if err := s.engagementRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}
	cache.InvalidateTweet(ctx, in.TweetID)
	return reply, nil
}

// ListReplies returns replies to a tweet, newest first.
func (s *EngagementService) ListReplies(ctx context.Context, tweetID uint, limit, offset int, viewerID uint) ([]models.Reply, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, viewerID); err != nil {
		return nil, err
	}
	return s.engagementRepo.ListReplies(ctx, tweetID, limit, offset)
}

// RecordView records that the user saw the tweet. Repeat views of the same
// tweet by the same user are no-ops.
func (s *EngagementService) RecordView(ctx context.Context, userID, tweetID uint) error {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID, userID); err != nil {
		return err
	}
	return s.engagementRepo.RecordView(ctx, &models.View{UserID: userID, TweetID: tweetID})
}
