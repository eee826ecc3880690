package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Story is a short-lived media item stored in MongoDB.
type Story struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	MediaPath   string             `json:"media_path" bson:"media_path"`
	MediaType   string             `json:"media_type" bson:"media_type"`
	WrittenText string             `json:"written_text,omitempty" bson:"written_text,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	DeletedAt   *time.Time         `json:"-" bson:"deleted_at"`
}

// FeedStory is a story enriched with its author.
type FeedStory struct {
	ID          string      `json:"id"`
	Author      UserCompact `json:"author"`
	MediaPath   string      `json:"mediaPath"`
	MediaType   string      `json:"mediaType"`
	WrittenText string      `json:"writtenText,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	IsOwn       bool        `json:"isOwn"`
}
