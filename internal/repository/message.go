package repository

import (
	"context"
	"errors"
	"time"

	"warbler/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository defines the interface for message, reaction, read-state,
// and tombstone operations
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	ListDirect(ctx context.Context, userID1, userID2, viewerID uint, limit, offset int) ([]models.Message, error)
	ListGroup(ctx context.Context, groupID, viewerID uint, limit, offset int) ([]models.Message, error)
	UpsertReaction(ctx context.Context, reaction *models.Reaction) error
	DeleteReaction(ctx context.Context, messageID, userID uint) error
	MarkRead(ctx context.Context, messageID, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	CreateTombstone(ctx context.Context, messageID, userID uint) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Reactions").
		First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}

// withoutTombstoned excludes messages the viewer has deleted for themselves.
func withoutTombstoned(db *gorm.DB, viewerID uint) *gorm.DB {
	return db.Where(`messages.id NOT IN (
		SELECT message_id FROM deleted_messages WHERE user_id = ?)`, viewerID)
}

func (r *messageRepository) ListDirect(ctx context.Context, userID1, userID2, viewerID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	q := r.db.WithContext(ctx).Model(&models.Message{}).
		Preload("Sender").
		Preload("Reactions").
		Where(`(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)`,
			userID1, userID2, userID2, userID1)
	err := withoutTombstoned(q, viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

func (r *messageRepository) ListGroup(ctx context.Context, groupID, viewerID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	q := r.db.WithContext(ctx).Model(&models.Message{}).
		Preload("Sender").
		Preload("Reactions").
		Where("group_id = ?", groupID)
	err := withoutTombstoned(q, viewerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return msgs, nil
}

// UpsertReaction creates the user's reaction on a message or replaces its
// emoji. One reaction per user per message.
func (r *messageRepository) UpsertReaction(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emoji", "created_at"}),
		}).
		Create(reaction).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) DeleteReaction(ctx context.Context, messageID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Reaction", messageID)
	}
	return nil
}

// MarkRead upserts the per-recipient read row, the single source of truth
// for read tracking.
func (r *messageRepository) MarkRead(ctx context.Context, messageID, userID uint) error {
	now := time.Now()
	status := models.MessageReadStatus{
		MessageID: messageID,
		UserID:    userID,
		IsRead:    true,
		ReadAt:    &now,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_read", "read_at"}),
		}).
		Create(&status).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// UnreadCount counts direct messages to the user plus group messages in the
// user's groups that have no read row, skipping tombstoned messages.
func (r *messageRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Message{}).
		Where(`(receiver_id = ? OR group_id IN (
			SELECT group_id FROM group_members WHERE user_id = ?))`, userID, userID).
		Where("sender_id <> ?", userID).
		Where(`messages.id NOT IN (
			SELECT message_id FROM message_read_status WHERE user_id = ? AND is_read)`, userID)
	if err := withoutTombstoned(q, userID).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// CreateTombstone hides a message for one user. Repeat deletes are a no-op.
func (r *messageRepository) CreateTombstone(ctx context.Context, messageID, userID uint) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&models.DeletedMessage{MessageID: messageID, UserID: userID}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
