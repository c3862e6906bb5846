package service

import (
	"context"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown tweet", func(t *testing.T) {
		tweets := noopTweetRepo()
		tweets.getByIDFn = func(_ context.Context, id, _ uint) (*models.Tweet, error) {
			return nil, models.NewNotFoundError("Tweet", id)
		}
		svc := NewEngagementService(noopEngagementRepo(), tweets)

		err := svc.Like(ctx, 1, 99)
		assertAppErrCode(t, err, models.CodeNotFound)
	})

	t.Run("surfaces a duplicate like", func(t *testing.T) {
		engagement := noopEngagementRepo()
		engagement.createLikeFn = func(_ context.Context, _ *models.Like) error {
			return models.NewDuplicateError("Tweet already liked")
		}
		svc := NewEngagementService(engagement, noopTweetRepo())

		err := svc.Like(ctx, 1, 7)
		assertAppErrCode(t, err, models.CodeDuplicate)
	})
}

func TestEngagementService_Reply(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the reply", func(t *testing.T) {
		engagement := noopEngagementRepo()
		engagement.createReplyFn = func(_ context.Context, r *models.Reply) error {
			r.ID = 11
			return nil
		}
		svc := NewEngagementService(engagement, noopTweetRepo())

		reply, err := svc.Reply(ctx, ReplyInput{UserID: 1, TweetID: 7, TextContent: "well said"})
		require.NoError(t, err)
		assert.Equal(t, uint(11), reply.ID)
		assert.Equal(t, uint(7), reply.TweetID)
	})

	t.Run("rejects blank text", func(t *testing.T) {
		svc := NewEngagementService(noopEngagementRepo(), noopTweetRepo())
		_, err := svc.Reply(ctx, ReplyInput{UserID: 1, TweetID: 7, TextContent: " "})
		assertAppErrCode(t, err, models.CodeValidation)
	})
}

func TestEngagementService_RecordView(t *testing.T) {
	engagement := noopEngagementRepo()
	var recorded int
	engagement.recordViewFn = func(_ context.Context, _ *models.View) error {
		recorded++
		return nil
	}
	svc := NewEngagementService(engagement, noopTweetRepo())

	// Repeat views pass through; the repo makes them idempotent.
	require.NoError(t, svc.RecordView(context.Background(), 1, 7))
	require.NoError(t, svc.RecordView(context.Background(), 1, 7))
	assert.Equal(t, 2, recorded)
}
