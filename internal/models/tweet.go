package models

import "time"

// Tweet is a public post authored by a user.
type Tweet struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	User         User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	TextContent  string `gorm:"type:text;not null" json:"text_content"`
	MediaContent string `gorm:"type:text" json:"media_content,omitempty"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// RepliesCount is not persisted; computed at query time
	RepliesCount int `gorm:"->;-:migration" json:"replies_count"`
	// RetweetsCount is not persisted; computed at query time
	RetweetsCount int `gorm:"->;-:migration" json:"retweets_count"`
	// Liked indicates whether the current requesting user liked this tweet (computed)
	Liked     bool      `gorm:"->;-:migration" json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Tweet) TableName() string {
	return "tweets"
}

// TweetAuthor is the nested author view embedded in TweetView.
type TweetAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// TweetView is the wire representation of a tweet. CreatedAt is rendered
// as a human-readable timestamp string rather than RFC 3339.
type TweetView struct {
	ID            uint        `json:"id"`
	User          TweetAuthor `json:"user"`
	TextContent   string      `json:"text_content"`
	MediaContent  string      `json:"media_content,omitempty"`
	LikesCount    int         `json:"likes_count"`
	RepliesCount  int         `json:"replies_count"`
	RetweetsCount int         `json:"retweets_count"`
	Liked         bool        `json:"liked"`
	CreatedAt     string      `json:"created_at"`
}

// ToView converts a tweet into its API representation.
func (t *Tweet) ToView() TweetView {
	return TweetView{
		ID: t.ID,
		User: TweetAuthor{
			ID:       t.UserID,
			Username: t.User.Username,
		},
		TextContent:   t.TextContent,
		MediaContent:  t.MediaContent,
		LikesCount:    t.LikesCount,
		RepliesCount:  t.RepliesCount,
		RetweetsCount: t.RetweetsCount,
		Liked:         t.Liked,
		CreatedAt:     t.CreatedAt.Format(time.ANSIC),
	}
}

// TweetViews converts a slice of tweets into their API representations.
func TweetViews(tweets []*Tweet) []TweetView {
	views := make([]TweetView, 0, len(tweets))
	for _, t := range tweets {
		views = append(views, t.ToView())
	}
	return views
}
