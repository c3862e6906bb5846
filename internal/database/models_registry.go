package database

import "warbler/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Tweet{},
		&models.Follower{},
		&models.Reply{},
		&models.Retweet{},
		&models.Like{},
		&models.View{},
		&models.Group{},
		&models.GroupMember{},
		&models.Message{},
		&models.Reaction{},
		&models.Block{},
		&models.DeletedMessage{},
		&models.MessageReadStatus{},
	}
}
