package service

import (
	"context"
	"strings"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweetService_PostTweet(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and re-reads with counts", func(t *testing.T) {
		tweets := noopTweetRepo()
		tweets.createFn = func(_ context.Context, tw *models.Tweet) error {
			tw.ID = 7
			return nil
		}
		tweets.getByIDFn = func(_ context.Context, id, viewerID uint) (*models.Tweet, error) {
			assert.Equal(t, uint(7), id)
			assert.Equal(t, uint(1), viewerID)
			return &models.Tweet{ID: id, UserID: 1, TextContent: "chirp"}, nil
		}
		svc := NewTweetService(tweets, noopUserRepo())

		tweet, err := svc.PostTweet(ctx, PostTweetInput{UserID: 1, TextContent: "chirp"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), tweet.ID)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		svc := NewTweetService(noopTweetRepo(), noopUserRepo())
		_, err := svc.PostTweet(ctx, PostTweetInput{UserID: 1, TextContent: "   "})
		assertAppErrCode(t, err, models.CodeValidation)
	})

	t.Run("rejects oversized text", func(t *testing.T) {
		svc := NewTweetService(noopTweetRepo(), noopUserRepo())
		_, err := svc.PostTweet(ctx, PostTweetInput{UserID: 1, TextContent: strings.Repeat("x", 10001)})
		assertAppErrCode(t, err, models.CodeValidation)
	})
}

func TestTweetService_DeleteTweet(t *testing.T) {
	ctx := context.Background()

	tweets := noopTweetRepo()
	tweets.getByIDFn = func(_ context.Context, id, _ uint) (*models.Tweet, error) {
		return &models.Tweet{ID: id, UserID: 1}, nil
	}
	var deleted bool
	tweets.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}
	svc := NewTweetService(tweets, noopUserRepo())

	t.Run("only the author may delete", func(t *testing.T) {
		err := svc.DeleteTweet(ctx, 7, 2)
		assertAppErrCode(t, err, models.CodeForbidden)
		assert.False(t, deleted)
	})

	t.Run("author delete succeeds", func(t *testing.T) {
		err := svc.DeleteTweet(ctx, 7, 1)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestTweetService_ListHomeFeed_PassesThrough(t *testing.T) {
	tweets := noopTweetRepo()
	tweets.listHomeFeedFn = func(_ context.Context, userID uint, limit, offset int) ([]*models.Tweet, error) {
		assert.Equal(t, uint(1), userID)
		assert.Equal(t, 20, limit)
		return []*models.Tweet{{ID: 3, UserID: 1, TextContent: "hi"}}, nil
	}
	svc := NewTweetService(tweets, noopUserRepo())

	feed, err := svc.ListHomeFeed(context.Background(), 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, uint(3), feed[0].ID)

	// Later pages bypass the cache entirely.
	feed, err = svc.ListHomeFeed(context.Background(), 1, 20, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
}
