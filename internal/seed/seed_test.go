package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeed(t *testing.T) {
	db := openSeedDB(t)

	opts := Options{
		NumUsers:    4,
		NumTweets:   10,
		NumGroups:   2,
		NumMessages: 8,
		MaxDays:     7,
		SkipBcrypt:  true,
	}
	require.NoError(t, Seed(db, opts))

	var users, tweets, groups, members, messages int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Tweet{}).Count(&tweets).Error)
	require.NoError(t, db.Model(&models.Group{}).Count(&groups).Error)
	require.NoError(t, db.Model(&models.GroupMember{}).Count(&members).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messages).Error)

	assert.Equal(t, int64(4), users)
	assert.Equal(t, int64(10), tweets)
	assert.Equal(t, int64(2), groups)
	assert.GreaterOrEqual(t, members, int64(6), "each group starts with at least three members")
	assert.Greater(t, messages, int64(0))
	assert.LessOrEqual(t, messages, int64(8))

	// Every message names exactly one recipient.
	var bad int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("(receiver_id IS NULL) = (group_id IS NULL)").Count(&bad).Error)
	assert.Zero(t, bad)
}

func TestSeed_RequiresUsers(t *testing.T) {
	db := openSeedDB(t)
	err := Seed(db, Options{NumUsers: 0})
	assert.Error(t, err)
}

func TestFactory(t *testing.T) {
	db := openSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	t.Run("CreateUser applies overrides", func(t *testing.T) {
		user, err := f.CreateUser(func(u *models.User) {
			u.Username = "pinned_name"
		})
		require.NoError(t, err)
		assert.Equal(t, "pinned_name", user.Username)
		assert.NotZero(t, user.ID)
	})

	t.Run("BuildTweet backdates creation", func(t *testing.T) {
		user, err := f.CreateUser()
		require.NoError(t, err)
		tweet := f.BuildTweet(user)
		assert.Equal(t, user.ID, tweet.UserID)
		assert.NotEmpty(t, tweet.TextContent)
		assert.True(t, tweet.CreatedAt.Before(time.Now()))
	})
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_users: 3\nskip_bcrypt: true\n"), 0o600))

	opts, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.NumUsers)
	assert.True(t, opts.SkipBcrypt)
	// Fields the preset leaves out keep their defaults.
	assert.Equal(t, DefaultOptions().NumTweets, opts.NumTweets)

	_, err = LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
