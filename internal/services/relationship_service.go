package services

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

const (
	msgWrongPair          = "You Enter Wrong Accepted and Requested UserId or same Ids"
	msgAccepterMissing    = "Accepted UserId Not Exist"
	msgRequesterMissing   = "Requested UserId Not Exist"
	msgAlreadyRequested   = "Already Friend Request has been Sent."
	msgRequestNotFound    = "This Friend Request Is Not Found."
	msgAlreadyFriends     = "Already You Are Friends."
	msgAlreadyRejected    = "You Already Reject The Friend Request."
	msgBadDecision        = "please enter correct identity"
	msgNotAccepter        = "You are not authorized to modify this friend request"
	msgFriendshipNotFound = "friend request not found"
	msgUserNotFound       = "User Not Found"
	msgBadFilter          = "please enter pending, accepted or rejected for filter"
	msgBadDirection       = "please enter received or sent for requestType"
)

// RelationshipService owns the friendship state machine.
type RelationshipService struct {
	users         repositories.UserRepository
	friendships   repositories.FriendshipRepository
	notifications *NotificationService
}

func NewRelationshipService(users repositories.UserRepository, friendships repositories.FriendshipRepository, notifications *NotificationService) *RelationshipService {
	return &RelationshipService{users: users, friendships: friendships, notifications: notifications}
}

// SendFriendRequest creates or recycles the pair's row as pending and notifies the accepter.
func (s *RelationshipService) SendFriendRequest(ctx context.Context, requesterID, accepterID uint) (*models.FriendshipView, error) {
	if requesterID == 0 || accepterID == 0 || requesterID == accepterID {
		return nil, apperrors.Conflict(msgWrongPair)
	}
	var c apperrors.Collector
	if err := s.checkUsers(ctx, &c, accepterID, requesterID); err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	f, err := s.friendships.RequestPair(ctx, requesterID, accepterID, func(existing *models.Friendship) error {
		if existing != nil && (existing.Status == models.FriendshipPending || existing.Status == models.FriendshipAccepted) {
			return apperrors.Conflict(msgAlreadyRequested)
		}
		return nil
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil, apperrors.Conflict(msgAlreadyRequested)
	}
	if err != nil {
		return nil, err
	}

	view, err := s.GetFriendship(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	s.notifications.notify(ctx, Activity{
		ActorID:    requesterID,
		Recipients: []uint{accepterID},
		Type:       models.ActivityFriendRequestReceived,
		ActivityID: idString(f.ID),
		Data:       view,
	})
	return view, nil
}

// ApproveOrReject applies the accepter's decision and notifies the requester.
func (s *RelationshipService) ApproveOrReject(ctx context.Context, actorID, friendshipID uint, decision models.FriendshipStatus) (*models.FriendshipView, error) {
	f, err := s.friendships.GetFriendshipByID(ctx, friendshipID)
	found, err := exists(err)
	if err != nil {
		return nil, err
	}

	var c apperrors.Collector
	if !found {
		c.Add(http.StatusNotFound, msgRequestNotFound)
	} else {
		if decision == models.FriendshipAccepted && f.IsFriend {
			c.Add(http.StatusConflict, msgAlreadyFriends)
		}
		if decision == models.FriendshipRejected && f.Status == models.FriendshipRejected {
			c.Add(http.StatusConflict, msgAlreadyRejected)
		}
	}
	if decision != models.FriendshipAccepted && decision != models.FriendshipRejected {
		c.Add(http.StatusUnauthorized, msgBadDecision)
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	if f.AccepterID != actorID {
		return nil, apperrors.Forbidden(msgNotAccepter)
	}

	f.Status = decision
	f.IsFriend = decision == models.FriendshipAccepted
	if err := s.friendships.UpdateFriendship(ctx, f); err != nil {
		return nil, err
	}

	view, err := s.GetFriendship(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	activity := models.ActivityFriendRequestRejected
	if f.IsFriend {
		activity = models.ActivityFriendRequestAccepted
	}
	s.notifications.notify(ctx, Activity{
		ActorID:    actorID,
		Recipients: []uint{f.RequesterID},
		Type:       activity,
		ActivityID: idString(f.ID),
		Data:       view,
	})
	return view, nil
}

// Unfollow soft-deletes an accepted pair and the notifications it produced.
func (s *RelationshipService) Unfollow(ctx context.Context, userID, otherID uint) error {
	var c apperrors.Collector
	if err := s.checkUsers(ctx, &c, userID, otherID); err != nil {
		return err
	}

	f, err := s.friendships.GetFriendshipByPair(ctx, userID, otherID)
	found, err := exists(err)
	if err != nil {
		return err
	}
	c.Check(found && f.IsFriend && f.Status == models.FriendshipAccepted, http.StatusNotFound, msgRequestNotFound)
	if err := c.Err(); err != nil {
		return err
	}

	if err := s.friendships.DeleteFriendship(ctx, f.ID); err != nil {
		return notFound(err, msgRequestNotFound)
	}
	s.notifications.Retract(ctx, idString(f.ID), models.FriendshipActivities...)
	return nil
}

// GetFriendship returns a row with both users' display fields.
func (s *RelationshipService) GetFriendship(ctx context.Context, id uint) (*models.FriendshipView, error) {
	f, err := s.friendships.GetFriendshipWithUsers(ctx, id)
	if err != nil {
		return nil, notFound(err, msgFriendshipNotFound)
	}
	return &models.FriendshipView{
		FriendshipID:        f.ID,
		AcceptedUserID:      f.AccepterID,
		RequestedUserID:     f.RequesterID,
		AcceptedUserName:    f.Accepter.FullName(),
		RequestedUserName:   f.Requester.FullName(),
		AcceptedUserAvatar:  f.Accepter.Avatar,
		RequestedUserAvatar: f.Requester.Avatar,
		Status:              f.Status.Text(),
	}, nil
}

// ListRequests pages the user's rows for one status, annotated with the user's side.
func (s *RelationshipService) ListRequests(ctx context.Context, userID uint, filter repositories.RequestFilter, p pagination.Params) (pagination.Page[models.RequestedUser], error) {
	var empty pagination.Page[models.RequestedUser]
	if filter.Status == "" {
		filter.Status = models.FriendshipPending
	}

	var c apperrors.Collector
	_, err := s.users.GetUserByID(ctx, userID)
	ok, err := exists(err)
	if err != nil {
		return empty, err
	}
	c.Check(ok, http.StatusNotFound, msgUserNotFound)
	c.Check(filter.Status.Valid(), http.StatusUnauthorized, msgBadFilter)
	switch filter.Direction {
	case models.DirectionBoth, models.DirectionSent, models.DirectionReceived:
	default:
		c.Add(http.StatusUnauthorized, msgBadDirection)
	}
	if err := c.Err(); err != nil {
		return empty, err
	}

	rows, total, err := s.friendships.ListRequests(ctx, userID, filter, p.Offset(), p.Limit())
	if err != nil {
		return empty, err
	}
	return pagination.Map(pagination.NewPage(rows, total), func(f models.Friendship) models.RequestedUser {
		requestType := "Request Sent"
		if f.AccepterID == userID {
			requestType = "Request Received"
		}
		return models.RequestedUser{
			FriendshipID:  f.ID,
			UserID:        f.Other(userID),
			RequestType:   requestType,
			RequestStatus: f.Status.Text(),
		}
	}), nil
}

// Friends pages the user's accepted friends ordered by id.
func (s *RelationshipService) Friends(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[models.UserCompact], error) {
	ids, err := s.friendships.GetFriendIDs(ctx, userID)
	if err != nil {
		return pagination.Page[models.UserCompact]{}, err
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return pagination.Page[models.UserCompact]{}, err
	}
	return pagination.Slice(compacts(users), p), nil
}

// SuggestFriends ranks every non-friend by mutual accepted friends, ties by id.
func (s *RelationshipService) SuggestFriends(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[models.UserCompact], error) {
	var empty pagination.Page[models.UserCompact]
	friendIDs, err := s.friendships.GetFriendIDs(ctx, userID)
	if err != nil {
		return empty, err
	}

	friendsOfFriends, err := s.friendships.GetFriendIDsOf(ctx, friendIDs)
	if err != nil {
		return empty, err
	}
	mutual := make(map[uint]int)
	for _, ids := range friendsOfFriends {
		for _, id := range ids {
			mutual[id]++
		}
	}

	excluded := append([]uint{userID}, friendIDs...)
	candidates, err := s.users.GetUsersExcept(ctx, excluded)
	if err != nil {
		return empty, err
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		mi, mj := mutual[candidates[i].ID], mutual[candidates[j].ID]
		if mi != mj {
			return mi > mj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return pagination.Slice(compacts(candidates), p), nil
}

// MutualFriends intersects both users' accepted-friend sets.
func (s *RelationshipService) MutualFriends(ctx context.Context, userID, otherID uint, p pagination.Params) (pagination.Page[models.UserCompact], error) {
	var empty pagination.Page[models.UserCompact]
	sets, err := s.friendships.GetFriendIDsOf(ctx, []uint{userID, otherID})
	if err != nil {
		return empty, err
	}
	theirs := make(map[uint]bool, len(sets[otherID]))
	for _, id := range sets[otherID] {
		theirs[id] = true
	}
	var shared []uint
	for _, id := range sets[userID] {
		if theirs[id] && id != userID && id != otherID {
			shared = append(shared, id)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, shared)
	if err != nil {
		return empty, err
	}
	return pagination.Slice(compacts(users), p), nil
}

// checkUsers adds a 404 entry for each missing id; only store failures are returned.
func (s *RelationshipService) checkUsers(ctx context.Context, c *apperrors.Collector, accepterID, requesterID uint) error {
	for _, check := range []struct {
		id  uint
		msg string
	}{{accepterID, msgAccepterMissing}, {requesterID, msgRequesterMissing}} {
		_, err := s.users.GetUserByID(ctx, check.id)
		ok, err := exists(err)
		if err != nil {
			return err
		}
		c.Check(ok, http.StatusNotFound, check.msg)
	}
	return nil
}

func compacts(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
