package seed

import (
	"fmt"
	"math/rand"
	"os"

	"warbler/internal/middleware"
	"warbler/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int  `yaml:"num_users"`
	NumTweets   int  `yaml:"num_tweets"`
	NumGroups   int  `yaml:"num_groups"`
	NumMessages int  `yaml:"num_messages"`
	MaxDays     int  `yaml:"max_days"`
	SkipBcrypt  bool `yaml:"skip_bcrypt"`
	ShouldClean bool `yaml:"clean"`
}

// DefaultOptions are used when no preset file is given.
func DefaultOptions() Options {
	return Options{
		NumUsers:    25,
		NumTweets:   200,
		NumGroups:   5,
		NumMessages: 100,
		MaxDays:     30,
	}
}

// LoadPreset reads seeder options from a YAML preset file, filling in
// defaults for zero fields.
func LoadPreset(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parse preset: %w", err)
	}
	return opts, nil
}

var groupNames = []string{
	"General", "Music", "Movies", "Gaming", "Sports", "Technology",
	"Books", "Food", "Travel", "Programming", "Science", "Art",
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	middleware.Logger.Info("seeding database",
		"users", opts.NumUsers, "tweets", opts.NumTweets,
		"groups", opts.NumGroups, "messages", opts.NumMessages)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			middleware.Logger.Warn("could not clear all existing data, continuing", "error", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("create users: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return fmt.Errorf("at least one user is required")
	}

	tweets := make([]*models.Tweet, 0, opts.NumTweets)
	for i := 0; i < opts.NumTweets; i++ {
		tweets = append(tweets, f.BuildTweet(users[f.rng.Intn(len(users))]))
	}
	if err := f.CreateTweetsBatch(tweets); err != nil {
		return fmt.Errorf("create tweets: %w", err)
	}

	if err := seedSocialMesh(db, f.rng, users); err != nil {
		return fmt.Errorf("seed social mesh: %w", err)
	}

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups && i < len(groupNames); i++ {
		memberIDs := pickUserIDs(f.rng, users, 3+f.rng.Intn(len(users)/2+1))
		group, err := f.CreateGroup(groupNames[i], memberIDs)
		if err != nil {
			return fmt.Errorf("create groups: %w", err)
		}
		groups = append(groups, group)
	}

	for i := 0; i < opts.NumMessages; i++ {
		sender := users[f.rng.Intn(len(users))]
		if len(groups) > 0 && f.rng.Intn(3) == 0 {
			group := groups[f.rng.Intn(len(groups))]
			if _, err := f.CreateGroupMessage(sender.ID, group.ID); err != nil {
				return fmt.Errorf("create messages: %w", err)
			}
			continue
		}
		receiver := users[f.rng.Intn(len(users))]
		if receiver.ID == sender.ID {
			continue
		}
		if _, err := f.CreateDirectMessage(sender.ID, receiver.ID); err != nil {
			return fmt.Errorf("create messages: %w", err)
		}
	}

	middleware.Logger.Info("database seeding completed")
	return nil
}

// seedSocialMesh adds follows and likes so feeds are non-empty. Conflicting
// pairs are skipped rather than failing the run.
func seedSocialMesh(db *gorm.DB, rng *rand.Rand, users []*models.User) error {
	for _, u := range users {
		follows := rng.Intn(len(users)/2 + 1)
		for i := 0; i < follows; i++ {
			target := users[rng.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			follow := &models.Follower{FollowerID: u.ID, FollowingID: target.ID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error; err != nil {
				return err
			}
		}
	}

	var tweetIDs []uint
	if err := db.Model(&models.Tweet{}).Pluck("id", &tweetIDs).Error; err != nil {
		return err
	}
	if len(tweetIDs) == 0 {
		return nil
	}
	for _, u := range users {
		likes := rng.Intn(10)
		for i := 0; i < likes; i++ {
			like := &models.Like{UserID: u.ID, TweetID: tweetIDs[rng.Intn(len(tweetIDs))]}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func pickUserIDs(rng *rand.Rand, users []*models.User, n int) []uint {
	if n > len(users) {
		n = len(users)
	}
	perm := rng.Perm(len(users))
	ids := make([]uint, 0, n)
	for _, idx := range perm[:n] {
		ids = append(ids, users[idx].ID)
	}
	return ids
}

func clearData(db *gorm.DB) error {
	sql := `TRUNCATE TABLE message_read_status, deleted_messages, reactions, messages,
		group_members, groups, blocks, views, likes, retweets, replies,
		followers, tweets, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
