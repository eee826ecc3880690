package services

import (
	"context"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

const (
	msgCommentNotFound = "Comment Not Found."
	msgNotCommentOwner = "You are not authorized to modify this comment"
)

// CommentService manages comments and notifies post owners.
type CommentService struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	notifications *NotificationService
}

func NewCommentService(users repositories.UserRepository, posts repositories.PostRepository, comments repositories.CommentRepository, notifications *NotificationService) *CommentService {
	return &CommentService{users: users, posts: posts, comments: comments, notifications: notifications}
}

// UpsertComment creates a comment, or edits it when CommentID is set and the caller wrote it.
func (s *CommentService) UpsertComment(ctx context.Context, userID uint, req models.UpsertCommentRequest) (*models.CommentView, error) {
	post, err := s.posts.GetPostByID(ctx, req.PostID)
	if err != nil {
		return nil, notFound(err, msgPostNotFound)
	}
	text := strings.TrimSpace(req.CommentText)

	if req.CommentID != 0 {
		comment, err := s.comments.GetCommentByID(ctx, req.CommentID)
		if err != nil {
			return nil, notFound(err, msgCommentNotFound)
		}
		if comment.UserID != userID || comment.PostID != post.ID {
			return nil, apperrors.Forbidden(msgNotCommentOwner)
		}
		comment.CommentText = text
		if err := s.comments.UpdateComment(ctx, comment); err != nil {
			return nil, err
		}
		return s.view(ctx, comment)
	}

	comment := &models.Comment{PostID: post.ID, UserID: userID, CommentText: text}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	view, err := s.view(ctx, comment)
	if err != nil {
		return nil, err
	}
	s.notifications.notify(ctx, Activity{
		ActorID:    userID,
		Recipients: []uint{post.UserID},
		Type:       models.ActivityCommentAdded,
		ActivityID: idString(comment.ID),
		Data:       view,
	})
	return view, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.CommentView, error) {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgCommentNotFound)
	}
	return s.view(ctx, comment)
}

// DeleteComment is allowed to the comment's author and to the post's owner.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, id uint) error {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return notFound(err, msgCommentNotFound)
	}
	if comment.UserID != actorID {
		post, err := s.posts.GetPostByID(ctx, comment.PostID)
		if err != nil || post.UserID != actorID {
			return apperrors.Forbidden(msgNotCommentOwner)
		}
	}
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		return notFound(err, msgCommentNotFound)
	}
	s.notifications.Retract(ctx, idString(id), models.ActivityCommentAdded)
	return nil
}

func (s *CommentService) PostComments(ctx context.Context, postID uint, p pagination.Params) (pagination.Page[models.CommentView], error) {
	var empty pagination.Page[models.CommentView]
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return empty, notFound(err, msgPostNotFound)
	}
	comments, total, err := s.comments.GetCommentsByPostID(ctx, postID, p.Offset(), p.Limit())
	if err != nil {
		return empty, err
	}
	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.UserID
	}
	authors, err := userIndex(ctx, s.users, ids)
	if err != nil {
		return empty, err
	}
	return pagination.Map(pagination.NewPage(comments, total), func(c models.Comment) models.CommentView {
		return commentView(c, authors[c.UserID])
	}), nil
}

func (s *CommentService) view(ctx context.Context, c *models.Comment) (*models.CommentView, error) {
	authors, err := userIndex(ctx, s.users, []uint{c.UserID})
	if err != nil {
		return nil, err
	}
	v := commentView(*c, authors[c.UserID])
	return &v, nil
}

func commentView(c models.Comment, author models.UserCompact) models.CommentView {
	return models.CommentView{
		ID:          c.ID,
		PostID:      c.PostID,
		Author:      author,
		CommentText: c.CommentText,
		CreatedAt:   c.CreatedAt,
	}
}
