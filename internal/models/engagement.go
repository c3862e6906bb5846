package models

import "time"

// Reply is a comment on a tweet.
type Reply struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	TweetID      uint      `gorm:"not null;index" json:"tweet_id"`
	TextContent  string    `gorm:"type:text;not null" json:"text_content"`
	MediaContent string    `gorm:"type:text" json:"media_content,omitempty"`
	RepliedAt    time.Time `gorm:"autoCreateTime" json:"replied_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Reply) TableName() string {
	return "replies"
}

// Retweet records a user re-sharing a tweet. One retweet per user per tweet.
type Retweet struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_retweet_user_tweet" json:"user_id"`
	TweetID     uint      `gorm:"not null;uniqueIndex:idx_retweet_user_tweet" json:"tweet_id"`
	RetweetedAt time.Time `gorm:"autoCreateTime" json:"retweeted_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Retweet) TableName() string {
	return "retweets"
}

// Like records a user liking a tweet. One like per user per tweet.
type Like struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet" json:"user_id"`
	TweetID uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet" json:"tweet_id"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"liked_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// View is an impression record. Re-viewing a tweet is a no-op: the
// (user_id, tweet_id) pair is unique and inserts are idempotent.
type View struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_view_user_tweet" json:"user_id"`
	TweetID  uint      `gorm:"not null;uniqueIndex:idx_view_user_tweet" json:"tweet_id"`
	ViewedAt time.Time `gorm:"autoCreateTime" json:"viewed_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tweet Tweet `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (View) TableName() string {
	return "views"
}
