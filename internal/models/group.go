package models

import "time"

// Group is a named set of users that can exchange group messages.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Members []User `gorm:"many2many:group_members;" json:"members,omitempty"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

// GroupMember maps users to groups. The composite primary key prevents
// duplicate membership rows.
type GroupMember struct {
	UserID   uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	GroupID  uint      `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Group *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"group,omitempty"`
}

// TableName specifies the table name for GORM.
func (GroupMember) TableName() string {
	return "group_members"
}
