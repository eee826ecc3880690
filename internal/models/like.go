package models

import "time"

// Like is a per-user toggle on a post. Unliking flips Liked instead of deleting the row.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_user_like"`
	Liked     bool      `json:"liked" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostLikes lists the users currently liking a post.
type PostLikes struct {
	PostID    uint          `json:"postId"`
	Likes     []UserCompact `json:"likes"`
	LikeCount int           `json:"likeCount"`
}
