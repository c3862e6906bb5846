package models

import "time"

// Message is a direct or group message. Exactly one of ReceiverID and
// GroupID is set; the check constraint backs up the service-level
// validation so a direct SQL path cannot create an ambiguous row.
//
// Per-recipient read state lives in MessageReadStatus; there is no
// message-level read flag.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID *uint     `gorm:"index;check:chk_messages_recipient,(receiver_id IS NULL) <> (group_id IS NULL)" json:"receiver_id,omitempty"`
	GroupID    *uint     `gorm:"index" json:"group_id,omitempty"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	MediaURL   string    `gorm:"size:200" json:"media_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Sender    *User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Receiver  *User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver,omitempty"`
	Group     *Group     `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
	Reactions []Reaction `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"reactions,omitempty"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// IsDirect reports whether the message is a direct message.
func (m *Message) IsDirect() bool {
	return m.ReceiverID != nil
}

// Reaction is a user's emoji reaction on a message. One reaction per user
// per message; reacting again replaces the emoji.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_reaction_message_user" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_message_user" json:"user_id"`
	Emoji     string    `gorm:"size:10;not null" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Message *Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (Reaction) TableName() string {
	return "reactions"
}

// DeletedMessage is a per-user tombstone hiding a message from one viewer
// without deleting it globally.
type DeletedMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_deleted_message_user" json:"message_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_deleted_message_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Message *Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (DeletedMessage) TableName() string {
	return "deleted_messages"
}

// MessageReadStatus is the per-recipient read flag for a message and the
// single authority for read tracking.
type MessageReadStatus struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	MessageID uint       `gorm:"not null;uniqueIndex:idx_read_message_user" json:"message_id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_read_message_user" json:"user_id"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`

	// Relationships
	Message *Message `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (MessageReadStatus) TableName() string {
	return "message_read_status"
}
