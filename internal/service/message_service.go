package service

import (
	"context"

	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"
)

// Recipient is the destination of a message: exactly one of a user or a
// group. Construct with DirectTo or InGroup; the zero value is invalid.
type Recipient struct {
	userID  *uint
	groupID *uint
}

// DirectTo addresses a message to a single user.
func DirectTo(userID uint) Recipient {
	return Recipient{userID: &userID}
}

// InGroup addresses a message to a group.
func InGroup(groupID uint) Recipient {
	return Recipient{groupID: &groupID}
}

// Realtime event types pushed to websocket clients.
const (
	EventDirectMessage = "direct_message"
	EventGroupMessage  = "group_message"
	EventReaction      = "reaction"
)

// Notifier publishes realtime events for delivered messages and reactions.
// Implementations must tolerate delivery failure; publishing is best-effort.
type Notifier interface {
	PublishToUser(ctx context.Context, userID uint, eventType string, payload any)
	PublishToGroup(ctx context.Context, groupID uint, eventType string, payload any)
}

// MessageService provides direct and group messaging business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	groupRepo   repository.GroupRepository
	socialRepo  repository.SocialRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	SenderID uint
	To       Recipient
	Content  string
	MediaURL string
}

// NewMessageService returns a new MessageService. notifier may be nil.
func NewMessageService(
	messageRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
	socialRepo repository.SocialRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		groupRepo:   groupRepo,
		socialRepo:  socialRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

const maxMessageContentLen = 10000

// SendMessage delivers a message to a user or a group. Direct messages are
// forbidden when a block exists in either direction; group messages require
// sender membership.
func (s *MessageService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(in.Content) > maxMessageContentLen {
		return nil, models.NewValidationError("Message content too long (max 10000 characters)")
	}
	if in.To.userID == nil && in.To.groupID == nil {
		return nil, models.NewValidationError("Message must have a recipient")
	}

	msg := &models.Message{
		SenderID: in.SenderID,
		Content:  in.Content,
		MediaURL: in.MediaURL,
	}

	if in.To.userID != nil {
		receiverID := *in.To.userID
		if receiverID == in.SenderID {
			return nil, models.NewValidationError("You cannot message yourself")
		}
		if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
			return nil, err
		}
		blocked, err := s.socialRepo.IsBlockedEither(ctx, in.SenderID, receiverID)
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, models.NewForbiddenError("Messaging is blocked between these users")
		}
		msg.ReceiverID = &receiverID
	} else {
		groupID := *in.To.groupID
		if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
			return nil, err
		}
		member, err := s.groupRepo.IsMember(ctx, groupID, in.SenderID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewNotMemberError("You are not a member of this group")
		}
		msg.GroupID = &groupID
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if sender, err := s.userRepo.GetByID(ctx, in.SenderID); err == nil {
		msg.Sender = sender
	}

	if s.notifier != nil {
		if msg.ReceiverID != nil {
			s.notifier.PublishToUser(ctx, *msg.ReceiverID, EventDirectMessage, msg)
		} else {
			s.notifier.PublishToGroup(ctx, *msg.GroupID, EventGroupMessage, msg)
		}
	}

	return msg, nil
}

// ListConversation returns the direct messages between the viewer and the
// other user, newest first, excluding messages the viewer has deleted for
// themselves.
func (s *MessageService) ListConversation(ctx context.Context, viewerID, otherID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListDirect(ctx, viewerID, otherID, viewerID, limit, offset)
}

// ListGroupMessages returns a group's messages for a member, newest first,
// excluding messages the viewer has deleted for themselves.
func (s *MessageService) ListGroupMessages(ctx context.Context, groupID, viewerID uint, limit, offset int) ([]models.Message, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	member, err := s.groupRepo.IsMember(ctx, groupID, viewerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, models.NewNotMemberError("You are not a member of this group")
	}
	return s.messageRepo.ListGroup(ctx, groupID, viewerID, limit, offset)
}

// React sets the user's reaction on a message. Reacting a second time
// replaces the emoji rather than adding a row.
func (s *MessageService) React(ctx context.Context, messageID, userID uint, emoji string) error {
	if err := validation.ValidateEmoji(emoji); err != nil {
		return models.NewValidationError(err.Error())
	}
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(ctx, msg, userID); err != nil {
		return err
	}
	reaction := &models.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	}
	if err := s.messageRepo.UpsertReaction(ctx, reaction); err != nil {
		return err
	}

	if s.notifier != nil {
		if msg.GroupID != nil {
			s.notifier.PublishToGroup(ctx, *msg.GroupID, EventReaction, reaction)
		} else if other := s.otherParticipant(msg, userID); other != 0 {
			s.notifier.PublishToUser(ctx, other, EventReaction, reaction)
		}
	}
	return nil
}

// otherParticipant returns the direct-message counterpart of userID, or 0
// when the message has no other side.
func (s *MessageService) otherParticipant(msg *models.Message, userID uint) uint {
	if msg.SenderID != userID {
		return msg.SenderID
	}
	if msg.ReceiverID != nil {
		return *msg.ReceiverID
	}
	return 0
}

// RemoveReaction deletes the user's reaction; NOT_FOUND if none exists.
func (s *MessageService) RemoveReaction(ctx context.Context, messageID, userID uint) error {
	return s.messageRepo.DeleteReaction(ctx, messageID, userID)
}

// MarkRead records that the user has read the message.
func (s *MessageService) MarkRead(ctx context.Context, messageID, userID uint) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(ctx, msg, userID); err != nil {
		return err
	}
	return s.messageRepo.MarkRead(ctx, messageID, userID)
}

// UnreadCount returns the number of messages addressed to the user that
// have no read record.
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.UnreadCount(ctx, userID)
}

// DeleteForUser hides the message from the user without deleting it for
// other participants. Repeat deletes are no-ops.
func (s *MessageService) DeleteForUser(ctx context.Context, messageID, userID uint) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if err := s.requireParticipant(ctx, msg, userID); err != nil {
		return err
	}
	return s.messageRepo.CreateTombstone(ctx, messageID, userID)
}

func (s *MessageService) requireParticipant(ctx context.Context, msg *models.Message, userID uint) error {
	if msg.SenderID == userID {
		return nil
	}
	if msg.ReceiverID != nil {
		if *msg.ReceiverID == userID {
			return nil
		}
		return models.NewForbiddenError("You are not a participant in this conversation")
	}
	member, err := s.groupRepo.IsMember(ctx, *msg.GroupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return models.NewNotMemberError("You are not a member of this group")
	}
	return nil
}
