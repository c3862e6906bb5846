package service

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the edge", func(t *testing.T) {
		social := noopSocialRepo()
		var created *models.Follower
		social.createFollowFn = func(_ context.Context, f *models.Follower) error {
			created = f
			return nil
		}
		svc := NewSocialService(social, noopUserRepo())

		err := svc.Follow(ctx, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.FollowerID)
		assert.Equal(t, uint(2), created.FollowingID)
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		svc := NewSocialService(noopSocialRepo(), noopUserRepo())
		err := svc.Follow(ctx, 1, 1)
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("forbidden while blocked", func(t *testing.T) {
		social := noopSocialRepo()
		social.isBlockedEitherFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		svc := NewSocialService(social, noopUserRepo())

		err := svc.Follow(ctx, 1, 2)
		assertAppErrCode(t, err, models.CodeForbidden)
	})

	t.Run("unknown target", func(t *testing.T) {
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewSocialService(noopSocialRepo(), users)

		err := svc.Follow(ctx, 1, 99)
		assertAppErrCode(t, err, models.CodeNotFound)
	})
}

func TestSocialService_Block(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the block edge", func(t *testing.T) {
		social := noopSocialRepo()
		var created *models.Block
		social.createBlockFn = func(_ context.Context, b *models.Block) error {
			created = b
			return nil
		}
		svc := NewSocialService(social, noopUserRepo())

		err := svc.Block(ctx, 1, 2)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(1), created.BlockerID)
		assert.Equal(t, uint(2), created.BlockedID)
	})

	t.Run("rejects self-block", func(t *testing.T) {
		svc := NewSocialService(noopSocialRepo(), noopUserRepo())
		err := svc.Block(ctx, 1, 1)
		assertAppErrCode(t, err, models.CodeValidation)
	})
}

func TestSocialService_Unblock_DoesNotRestoreFollows(t *testing.T) {
	social := noopSocialRepo()
	social.createFollowFn = func(_ context.Context, _ *models.Follower) error {
		t.Fatal("unblock must not recreate follow edges")
		return nil
	}
	svc := NewSocialService(social, noopUserRepo())

	err := svc.Unblock(context.Background(), 1, 2)
	require.NoError(t, err)
}
