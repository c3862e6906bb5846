package repository

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"warbler/internal/database"
	"warbler/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Repository tests skipped: sqlite unavailable: %v", err)
		os.Exit(0)
	}

	// A single connection keeps every session on the same in-memory DB.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("sql.DB handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		log.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		log.Fatalf("migrate test schema: %v", err)
	}

	testDB = db
	os.Exit(m.Run())
}

// newTestUser inserts a user with a unique username/email for test isolation.
func newTestUser(t *testing.T, prefix string) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	u := &models.User{
		Username:     fmt.Sprintf("%s_%d", prefix, ts),
		Email:        fmt.Sprintf("%s_%d@example.com", prefix, ts),
		PasswordHash: "x",
	}
	if err := testDB.Create(u).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return u
}

func newTestTweet(t *testing.T, userID uint, text string) *models.Tweet {
	t.Helper()
	tw := &models.Tweet{UserID: userID, TextContent: text}
	if err := testDB.Create(tw).Error; err != nil {
		t.Fatalf("create test tweet: %v", err)
	}
	return tw
}
