package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a user's wall post; media attachments live in PostMedia rows.
type Post struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	WrittenText string         `json:"written_text"`
	Media       []PostMedia    `json:"media" gorm:"foreignKey:PostID"`
	CreatedAt   time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

type PostMedia struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	PostID    uint           `json:"-" gorm:"index;not null"`
	MediaPath string         `json:"media_path"`
	MediaType string         `json:"media_type" gorm:"size:20"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// FeedPost is a post as it appears in a feed or on a profile.
type FeedPost struct {
	ID           uint        `json:"id"`
	Author       UserCompact `json:"author"`
	WrittenText  string      `json:"writtenText"`
	Media        []PostMedia `json:"media"`
	LikeCount    int64       `json:"likeCount"`
	CommentCount int64       `json:"commentCount"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// FeedQuery is bound from the feed endpoint's query string.
type FeedQuery struct {
	OwnPostsOnly bool `query:"ownPostsOnly"`
}
