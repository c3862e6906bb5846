// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account.
//
// PasswordHash is a bcrypt hash; the plain-text password is never persisted
// and the hash is never serialized to API responses.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email           string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash    string    `gorm:"type:text;not null" json:"-"`
	FullName        string    `gorm:"size:100" json:"full_name,omitempty"`
	Bio             string    `gorm:"type:text" json:"bio,omitempty"`
	ProfileImageURL string    `gorm:"type:text" json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`

	Tweets []Tweet `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"tweets,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
