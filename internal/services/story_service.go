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
	msgStoryNoMedia  = "Atleast Select One Posts."
	msgStoryNotFound = "Story Not Found."
	msgNotStoryOwner = "You are not authorized to delete this story"
)

// StoryService creates and removes stories.
type StoryService struct {
	users         repositories.UserRepository
	friendships   repositories.FriendshipRepository
	stories       repositories.StoryRepository
	blobs         BlobStore
	notifications *NotificationService
}

func NewStoryService(
	users repositories.UserRepository,
	friendships repositories.FriendshipRepository,
	stories repositories.StoryRepository,
	blobs BlobStore,
	notifications *NotificationService,
) *StoryService {
	return &StoryService{users: users, friendships: friendships, stories: stories, blobs: blobs, notifications: notifications}
}

// AddStory requires a media file and notifies the author's friends.
func (s *StoryService) AddStory(ctx context.Context, userID uint, text string, file *Upload) (*models.FeedStory, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, apperrors.New(http.StatusBadRequest, msgStoryNoMedia)
	}
	path, err := s.blobs.Save(ctx, "stories", file.Data, file.Name)
	if err != nil {
		return nil, err
	}
	story := &models.Story{
		UserID:      userID,
		MediaPath:   path,
		MediaType:   storage.MediaType(file.Name),
		WrittenText: strings.TrimSpace(text),
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		s.discard(ctx, path)
		return nil, err
	}

	view, err := s.view(ctx, userID, story)
	if err != nil {
		return nil, err
	}
	friendIDs, err := s.friendships.GetFriendIDs(ctx, userID)
	if err != nil {
		log.Printf("Failed to load friends of %d for story notifications: %v\n", userID, err)
	}
	s.notifications.notify(ctx, Activity{
		ActorID:    userID,
		Recipients: friendIDs,
		Type:       models.ActivityStoryAdded,
		ActivityID: story.ID.Hex(),
		Data:       view,
	})
	return view, nil
}

func (s *StoryService) GetStory(ctx context.Context, viewerID uint, id string) (*models.FeedStory, error) {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgStoryNotFound)
	}
	return s.view(ctx, viewerID, story)
}

func (s *StoryService) DeleteStory(ctx context.Context, actorID uint, id string) error {
	story, err := s.stories.GetStoryByID(ctx, id)
	if err != nil {
		return notFound(err, msgStoryNotFound)
	}
	if story.UserID != actorID {
		return apperrors.Forbidden(msgNotStoryOwner)
	}
	if err := s.stories.DeleteStory(ctx, id); err != nil {
		return notFound(err, msgStoryNotFound)
	}
	s.discard(ctx, story.MediaPath)
	s.notifications.Retract(ctx, id, models.ActivityStoryAdded)
	return nil
}

func (s *StoryService) view(ctx context.Context, viewerID uint, story *models.Story) (*models.FeedStory, error) {
	views, err := enrichStories(ctx, s.users, viewerID, []models.Story{*story})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *StoryService) discard(ctx context.Context, path string) {
	if err := s.blobs.Delete(ctx, path); err != nil {
		log.Printf("Failed to delete blob %s: %v\n", path, err)
	}
}
