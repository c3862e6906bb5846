// Package seed provides helpers to create demo data for development and
// testing.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"warbler/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser builds and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:        gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		FullName:        gofakeit.Name(),
		Bio:             gofakeit.Sentence(10),
		ProfileImageURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	// bcrypt dominates seeding time with many users; dev mode skips it
	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildTweet constructs a tweet without persisting it, with a realistic
// created_at spread.
func (f *Factory) BuildTweet(user *models.User, overrides ...func(*models.Tweet)) *models.Tweet {
	tweet := &models.Tweet{
		UserID:      user.ID,
		TextContent: gofakeit.Sentence(f.rng.Intn(15) + 3),
	}
	if f.rng.Intn(4) == 0 {
		tweet.MediaContent = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	tweet.CreatedAt = time.Now().
		Add(-time.Duration(f.rng.Intn(maxDays)) * 24 * time.Hour).
		Add(-time.Duration(f.rng.Intn(24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)

	for _, override := range overrides {
		override(tweet)
	}
	return tweet
}

// CreateTweetsBatch persists multiple tweets in a single DB call.
func (f *Factory) CreateTweetsBatch(tweets []*models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}
	return f.db.Create(&tweets).Error
}

// CreateGroup builds and persists a group with the given members.
func (f *Factory) CreateGroup(name string, memberIDs []uint) (*models.Group, error) {
	group := &models.Group{Name: name}
	if err := f.db.Create(group).Error; err != nil {
		return nil, err
	}
	for _, id := range memberIDs {
		member := &models.GroupMember{UserID: id, GroupID: group.ID}
		if err := f.db.Create(member).Error; err != nil {
			return nil, err
		}
	}
	return group, nil
}

// CreateDirectMessage persists a direct message between two users.
func (f *Factory) CreateDirectMessage(senderID, receiverID uint) (*models.Message, error) {
	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: &receiverID,
		Content:    gofakeit.Sentence(f.rng.Intn(10) + 2),
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateGroupMessage persists a message in a group.
func (f *Factory) CreateGroupMessage(senderID, groupID uint) (*models.Message, error) {
	msg := &models.Message{
		SenderID: senderID,
		GroupID:  &groupID,
		Content:  gofakeit.Sentence(f.rng.Intn(10) + 2),
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}
