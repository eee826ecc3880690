package models

import (
	"time"

	"gorm.io/gorm"
)

// ActivityType identifies what caused a notification.
type ActivityType int

const (
	ActivityPostAdded ActivityType = iota + 1
	ActivityStoryAdded
	ActivityCommentAdded
	ActivityLike
	ActivityFriendRequestReceived
	ActivityFriendRequestAccepted
	ActivityFriendRequestRejected
)

var activityText = map[ActivityType]string{
	ActivityPostAdded:             "Post Added",
	ActivityStoryAdded:            "Story Added",
	ActivityCommentAdded:          "Comment Added",
	ActivityLike:                  "Give Like",
	ActivityFriendRequestReceived: "Friend Request Receive",
	ActivityFriendRequestAccepted: "Accept Friend Request",
	ActivityFriendRequestRejected: "Reject Friend Request",
}

func (a ActivityType) Text() string {
	return activityText[a]
}

// FriendshipActivities are the activity types whose ActivityID is a friendship id.
var FriendshipActivities = []ActivityType{
	ActivityFriendRequestReceived,
	ActivityFriendRequestAccepted,
	ActivityFriendRequestRejected,
}

// Notification is a denormalized event pointing at the entity that caused it.
// ActivityID is a string so it can hold both SQL ids and Mongo object ids.
type Notification struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	ActorID      uint           `json:"actor_id" gorm:"index"`
	ActivityType ActivityType   `json:"activity_type" gorm:"index"`
	ActivityID   string         `json:"activity_id" gorm:"size:64;index"`
	IsRead       bool           `json:"is_read" gorm:"default:false;index"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// NotificationView adds the display message for the activity type.
type NotificationView struct {
	Notification
	ActivityMessage string `json:"activity_message"`
}

// NotificationEvent is the payload pushed over the real-time channel.
type NotificationEvent struct {
	ActivityType    ActivityType `json:"activityType"`
	ActivityMessage string       `json:"activityMessage"`
	ActivityID      string       `json:"activityId"`
	ActorID         uint         `json:"actorId"`
	Data            any          `json:"data,omitempty"`
}
