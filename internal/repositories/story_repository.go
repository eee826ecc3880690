package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/friendbook/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByUserIDs(ctx context.Context, userIDs []uint, since time.Time) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
}

type storyRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewStoryRepository(mongoDB *mongo.Database) StoryRepository {
	return &storyRepository{
		collection: mongoDB.Collection("stories"),
		now:        time.Now,
	}
}

// EnsureStoryIndexes creates the index the feed query filters on.
func EnsureStoryIndexes(ctx context.Context, mongoDB *mongo.Database) error {
	_, err := mongoDB.Collection("stories").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = r.now()
	story.DeletedAt = nil
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var story models.Story
	if err := r.collection.FindOne(ctx, live(bson.M{"_id": objID})).Decode(&story); err != nil {
		return nil, translate(err)
	}
	return &story, nil
}

// GetStoriesByUserIDs returns live stories of userIDs created after since, newest first
func (r *storyRepository) GetStoriesByUserIDs(ctx context.Context, userIDs []uint, since time.Time) ([]models.Story, error) {
	stories := []models.Story{}
	if len(userIDs) == 0 {
		return stories, nil
	}
	filter := live(bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"created_at": bson.M{"$gt": since},
	})
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// DeleteStory tombstones a story
func (r *storyRepository) DeleteStory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx, live(bson.M{"_id": objID}), bson.M{"$set": bson.M{"deleted_at": r.now()}})
	if err != nil {
		return fmt.Errorf("delete story %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
