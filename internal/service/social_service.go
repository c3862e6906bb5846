package service

import (
	"context"

	"warbler/internal/cache"
	"warbler/internal/models"
	"warbler/internal/repository"
)

// SocialService provides follow and block business logic.
type SocialService struct {
	socialRepo repository.SocialRepository
	userRepo   repository.UserRepository
}

// NewSocialService returns a new SocialService.
func NewSocialService(socialRepo repository.SocialRepository, userRepo repository.UserRepository) *SocialService {
	return &SocialService{socialRepo: socialRepo, userRepo: userRepo}
}

// Follow creates a directed follow edge. Self-follows and duplicate edges
// are rejected; a block in either direction forbids the follow.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}

	blocked, err := s.socialRepo.IsBlockedEither(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if blocked {
		return models.NewForbiddenError("You cannot follow this user")
	}

	follow := &models.Follower{FollowerID: followerID, FollowingID: followingID}
	if err := s.socialRepo.CreateFollow(ctx, follow); err != nil {
		return err
	}

	cache.InvalidateFeed(ctx, followerID)
	return nil
}

// Unfollow removes the follow edge; NOT_FOUND if it does not exist.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if err := s.socialRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
		return err
	}
	cache.InvalidateFeed(ctx, followerID)
	return nil
}

// ListFollowers returns users following the given user, most recent first.
func (s *SocialService) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.socialRepo.ListFollowers(ctx, userID)
}

// ListFollowing returns users the given user follows, most recent first.
func (s *SocialService) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.socialRepo.ListFollowing(ctx, userID)
}

// IsFollowing reports whether follower follows following.
func (s *SocialService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.socialRepo.IsFollowing(ctx, followerID, followingID)
}

// Block creates a block edge. The repository severs any follow
// relationship between the two users atomically with the insert.
func (s *SocialService) Block(ctx context.Context, blockerID, blockedID uint) error {
	if blockerID == blockedID {
		return models.NewValidationError("You cannot block yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, blockedID); err != nil {
		return err
	}

	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.socialRepo.CreateBlock(ctx, block); err != nil {
		return err
	}

	cache.InvalidateFeed(ctx, blockerID)
	cache.InvalidateFeed(ctx, blockedID)
	return nil
}

// Unblock removes the block edge; NOT_FOUND if it does not exist. Severed
// follows are not restored.
func (s *SocialService) Unblock(ctx context.Context, blockerID, blockedID uint) error {
	if err := s.socialRepo.DeleteBlock(ctx, blockerID, blockedID); err != nil {
		return err
	}
	cache.InvalidateFeed(ctx, blockerID)
	return nil
}
