package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus is the state of the single relationship row between two users.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

var friendshipStatusText = map[FriendshipStatus]string{
	FriendshipPending:  "Your Request Is Pending",
	FriendshipAccepted: "You Accept The Request",
	FriendshipRejected: "You Reject The Request",
}

// Text is the human-readable label shown next to a request.
func (s FriendshipStatus) Text() string {
	return friendshipStatusText[s]
}

func (s FriendshipStatus) Valid() bool {
	_, ok := friendshipStatusText[s]
	return ok
}

// RequestDirection filters request listings by which side the user is on.
type RequestDirection string

const (
	DirectionBoth     RequestDirection = ""
	DirectionSent     RequestDirection = "sent"
	DirectionReceived RequestDirection = "received"
)

// Friendship is an undirected relationship stored as a directed pair. PairLow/PairHigh hold
// min/max of the two ids so the store can enforce one live row per unordered pair.
type Friendship struct {
	ID          uint             `json:"friendship_id" gorm:"primaryKey"`
	RequesterID uint             `json:"requester_id" gorm:"index;not null"`
	AccepterID  uint             `json:"accepter_id" gorm:"index;not null"`
	PairLow     uint             `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair,where:deleted_at IS NULL"`
	PairHigh    uint             `json:"-" gorm:"not null;uniqueIndex:idx_friendship_pair,where:deleted_at IS NULL"`
	Status      FriendshipStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	IsFriend    bool             `json:"is_friend" gorm:"default:false"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `json:"-" gorm:"index"`

	Requester User `json:"-" gorm:"foreignKey:RequesterID"`
	Accepter  User `json:"-" gorm:"foreignKey:AccepterID"`
}

// NormalizePair orders two user ids.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// BeforeSave keeps the pair columns in sync with the directed ids.
func (f *Friendship) BeforeSave(_ *gorm.DB) error {
	f.PairLow, f.PairHigh = NormalizePair(f.RequesterID, f.AccepterID)
	return nil
}

// Other returns the counter-party of userID in this relationship.
func (f *Friendship) Other(userID uint) uint {
	if f.RequesterID == userID {
		return f.AccepterID
	}
	return f.RequesterID
}

// FriendshipView is a friendship row enriched with both users' profile shortcuts.
type FriendshipView struct {
	FriendshipID        uint   `json:"friendshipId"`
	AcceptedUserID      uint   `json:"acceptedUserId"`
	RequestedUserID     uint   `json:"requestedUserId"`
	AcceptedUserName    string `json:"acceptedUserName"`
	RequestedUserName   string `json:"requestedUserName"`
	AcceptedUserAvatar  string `json:"acceptedUserAvatar"`
	RequestedUserAvatar string `json:"requestedUserAvatar"`
	Status              string `json:"status"`
}

// RequestedUser is one row of a request listing.
type RequestedUser struct {
	FriendshipID  uint   `json:"friendshipId"`
	UserID        uint   `json:"userId"`
	RequestType   string `json:"requestType"`
	RequestStatus string `json:"requestStatus"`
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// UpdateFriendRequest defines the request body for accepting/rejecting a friend request
type UpdateFriendRequest struct {
	Status string `json:"status" validate:"required"`
}
