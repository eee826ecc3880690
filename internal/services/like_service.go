package services

import (
	"context"
	"errors"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
)

const msgLikeNotFound = "Like Not Found."

// LikeService toggles likes and keeps the owner's "Give Like" notification in step.
type LikeService struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	notifications *NotificationService
}

func NewLikeService(users repositories.UserRepository, posts repositories.PostRepository, likes repositories.LikeRepository, notifications *NotificationService) *LikeService {
	return &LikeService{users: users, posts: posts, likes: likes, notifications: notifications}
}

// ToggleLike creates the row on first like and flips it afterwards.
func (s *LikeService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Like, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, msgPostNotFound)
	}

	like, err := s.likes.GetLike(ctx, postID, userID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		like = &models.Like{PostID: postID, UserID: userID, Liked: true}
	case err != nil:
		return nil, err
	default:
		like.Liked = !like.Liked
	}
	if err := s.likes.SaveLike(ctx, like); err != nil {
		return nil, err
	}

	if like.Liked {
		s.notifications.notify(ctx, Activity{
			ActorID:    userID,
			Recipients: []uint{post.UserID},
			Type:       models.ActivityLike,
			ActivityID: idString(like.ID),
			Data:       like,
		})
	} else {
		s.notifications.Retract(ctx, idString(like.ID), models.ActivityLike)
	}
	return like, nil
}

// PostLikes lists the users currently liking a post.
func (s *LikeService) PostLikes(ctx context.Context, postID uint) (*models.PostLikes, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, notFound(err, msgPostNotFound)
	}
	ids, err := s.likes.GetLikedUserIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	index, err := userIndex(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}
	likes := make([]models.UserCompact, 0, len(ids))
	for _, id := range ids {
		if u, ok := index[id]; ok {
			likes = append(likes, u)
		}
	}
	return &models.PostLikes{PostID: postID, Likes: likes, LikeCount: len(likes)}, nil
}

func (s *LikeService) GetLike(ctx context.Context, id uint) (*models.Like, error) {
	like, err := s.likes.GetLikeByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgLikeNotFound)
	}
	return like, nil
}
