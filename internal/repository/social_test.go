package repository

import (
	"context"
	"errors"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialRepository_Follows(t *testing.T) {
	repo := NewSocialRepository(testDB)
	ctx := context.Background()

	u1 := newTestUser(t, "fol1")
	u2 := newTestUser(t, "fol2")

	t.Run("CreateFollow and IsFollowing", func(t *testing.T) {
		err := repo.CreateFollow(ctx, &models.Follower{FollowerID: u1.ID, FollowingID: u2.ID})
		require.NoError(t, err)

		following, err := repo.IsFollowing(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.True(t, following)

		// The edge is directed.
		reverse, err := repo.IsFollowing(ctx, u2.ID, u1.ID)
		require.NoError(t, err)
		assert.False(t, reverse)
	})

	t.Run("Duplicate follow is rejected", func(t *testing.T) {
		err := repo.CreateFollow(ctx, &models.Follower{FollowerID: u1.ID, FollowingID: u2.ID})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeDuplicate, appErr.Code)
	})

	t.Run("ListFollowers and ListFollowing", func(t *testing.T) {
		followers, err := repo.ListFollowers(ctx, u2.ID)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, u1.Username, followers[0].Username)

		following, err := repo.ListFollowing(ctx, u1.ID)
		require.NoError(t, err)
		require.Len(t, following, 1)
		assert.Equal(t, u2.Username, following[0].Username)
	})

	t.Run("DeleteFollow", func(t *testing.T) {
		err := repo.DeleteFollow(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		following, err := repo.IsFollowing(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.False(t, following)
	})

	t.Run("DeleteFollow on missing edge", func(t *testing.T) {
		err := repo.DeleteFollow(ctx, u1.ID, u2.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestSocialRepository_Blocks(t *testing.T) {
	repo := NewSocialRepository(testDB)
	ctx := context.Background()

	u1 := newTestUser(t, "blk1")
	u2 := newTestUser(t, "blk2")

	t.Run("CreateBlock and IsBlockedEither", func(t *testing.T) {
		err := repo.CreateBlock(ctx, &models.Block{BlockerID: u1.ID, BlockedID: u2.ID})
		require.NoError(t, err)

		blocked, err := repo.IsBlockedEither(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.True(t, blocked)

		// Symmetric regardless of argument order.
		blocked, err = repo.IsBlockedEither(ctx, u2.ID, u1.ID)
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("Duplicate block is rejected", func(t *testing.T) {
		err := repo.CreateBlock(ctx, &models.Block{BlockerID: u1.ID, BlockedID: u2.ID})
		require.Error(t, err)

		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeDuplicate, appErr.Code)
	})

	t.Run("DeleteBlock clears the relation", func(t *testing.T) {
		err := repo.DeleteBlock(ctx, u1.ID, u2.ID)
		require.NoError(t, err)

		blocked, err := repo.IsBlockedEither(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.False(t, blocked)
	})
}

func TestSocialRepository_CreateBlockSeversFollows(t *testing.T) {
	repo := NewSocialRepository(testDB)
	ctx := context.Background()

	u1 := newTestUser(t, "sev1")
	u2 := newTestUser(t, "sev2")

	require.NoError(t, repo.CreateFollow(ctx, &models.Follower{FollowerID: u1.ID, FollowingID: u2.ID}))
	require.NoError(t, repo.CreateFollow(ctx, &models.Follower{FollowerID: u2.ID, FollowingID: u1.ID}))

	err := repo.CreateBlock(ctx, &models.Block{BlockerID: u1.ID, BlockedID: u2.ID})
	require.NoError(t, err)

	blocked, err := repo.IsBlockedEither(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	f12, err := repo.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	f21, err := repo.IsFollowing(ctx, u2.ID, u1.ID)
	require.NoError(t, err)
	assert.False(t, f12)
	assert.False(t, f21)

	// A rejected duplicate block must not roll back anything visible nor
	// resurrect follow edges, and follows created afterwards stand alone.
	err = repo.CreateBlock(ctx, &models.Block{BlockerID: u1.ID, BlockedID: u2.ID})
	require.Error(t, err)

	f12, err = repo.IsFollowing(ctx, u1.ID, u2.ID)
	require.NoError(t, err)
	assert.False(t, f12)
}
