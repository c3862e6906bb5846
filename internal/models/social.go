package models

import "time"

// Follower is a directed follow edge between two users.
// The (follower_id, following_id) pair is unique so an edge cannot
// accumulate duplicates.
type Follower struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follower_following" json:"following_id"`
	FollowedAt  time.Time `gorm:"autoCreateTime" json:"followed_at"`

	// Relationships
	FollowerUser  User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	FollowingUser User `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follower) TableName() string {
	return "followers"
}

// Block is a directed block edge. While a block exists in either direction
// the two users cannot message each other and their tweets are hidden from
// each other's feeds.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlockerID uint      `gorm:"not null;uniqueIndex:idx_blocker_blocked" json:"blocker_id"`
	BlockedID uint      `gorm:"not null;uniqueIndex:idx_blocker_blocked" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Blocker User `gorm:"foreignKey:BlockerID;constraint:OnDelete:CASCADE" json:"blocker,omitempty"`
	Blocked User `gorm:"foreignKey:BlockedID;constraint:OnDelete:CASCADE" json:"blocked,omitempty"`
}

// TableName specifies the table name for GORM.
func (Block) TableName() string {
	return "blocks"
}
