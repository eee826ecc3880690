package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	PostID      uint           `json:"post_id" gorm:"index;not null"`
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	CommentText string         `json:"comment_text"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// UpsertCommentRequest creates a comment when CommentID is zero and edits it otherwise.
type UpsertCommentRequest struct {
	CommentID   uint   `json:"comment_id"`
	PostID      uint   `json:"post_id" validate:"required"`
	CommentText string `json:"comment_text" validate:"required,min=1,max=500"`
}

// CommentView is a comment with its author.
type CommentView struct {
	ID          uint        `json:"id"`
	PostID      uint        `json:"postId"`
	Author      UserCompact `json:"author"`
	CommentText string      `json:"commentText"`
	CreatedAt   time.Time   `json:"createdAt"`
}
