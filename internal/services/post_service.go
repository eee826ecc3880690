package services

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/internal/storage"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
)

const (
	msgPostEmpty    = "Post Must Have Text Or Media."
	msgPostNotFound = "Post Not Found."
	msgNotPostOwner = "You are not authorized to delete this post"
)

// PostService creates and removes wall posts.
type PostService struct {
	users         repositories.UserRepository
	friendships   repositories.FriendshipRepository
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	blobs         BlobStore
	notifications *NotificationService
}

func NewPostService(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	blobs BlobStore,
	notifications *NotificationService,
) *PostService {
	return &PostService{
		users:         users,
		friendships:   friendships,
		posts:         posts,
		likes:         likes,
		comments:      comments,
		blobs:         blobs,
		notifications: notifications,
	}
}

// AddPost stores the media, saves the post and notifies the author's friends.
func (s *PostService) AddPost(ctx context.Context, userID uint, text string, files []Upload) (*models.FeedPost, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(files) == 0 {
		return nil, apperrors.New(http.StatusBadRequest, msgPostEmpty)
	}

	post := &models.Post{UserID: userID, WrittenText: text}
	for _, f := range files {
		path, err := s.blobs.Save(ctx, "posts", f.Data, f.Name)
		if err != nil {
			s.discard(ctx, post.Media)
			return nil, err
		}
		post.Media = append(post.Media, models.PostMedia{MediaPath: path, MediaType: storage.MediaType(f.Name)})
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.discard(ctx, post.Media)
		return nil, err
	}

	friendIDs, err := s.friendships.GetFriendIDs(ctx, userID)
	if err != nil {
		log.Printf("Failed to load friends of %d for post notifications: %v\n", userID, err)
	}
	view, err := s.view(ctx, post)
	if err != nil {
		return nil, err
	}
	s.notifications.notify(ctx, Activity{
		ActorID:    userID,
		Recipients: friendIDs,
		Type:       models.ActivityPostAdded,
		ActivityID: idString(post.ID),
		Data:       view,
	})
	return view, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.FeedPost, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgPostNotFound)
	}
	return s.view(ctx, post)
}

// DeletePost lets the owner tombstone a post; media blobs are removed best effort.
func (s *PostService) DeletePost(ctx context.Context, actorID, id uint) error {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return notFound(err, msgPostNotFound)
	}
	if post.UserID != actorID {
		return apperrors.Forbidden(msgNotPostOwner)
	}
	if err := s.posts.DeletePost(ctx, id); err != nil {
		return notFound(err, msgPostNotFound)
	}
	s.discard(ctx, post.Media)
	s.notifications.Retract(ctx, idString(id), models.ActivityPostAdded)
	return nil
}

func (s *PostService) view(ctx context.Context, post *models.Post) (*models.FeedPost, error) {
	views, err := enrichPosts(ctx, s.users, s.likes, s.comments, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *PostService) discard(ctx context.Context, media []models.PostMedia) {
	for _, m := range media {
		if err := s.blobs.Delete(ctx, m.MediaPath); err != nil {
			log.Printf("Failed to delete blob %s: %v\n", m.MediaPath, err)
		}
	}
}
