package repositories

import (
	"context"

	"github.com/anonto42/friendbook/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostsByUserIDs(ctx context.Context, userIDs []uint, offset, limit int) ([]models.Post, int64, error)
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository with posts and their media in PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost saves the post and its media rows together
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a live post with its media
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Media").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// GetPostsByUserIDs pages the posts authored by any of userIDs, newest first
func (r *PostgresPostRepository) GetPostsByUserIDs(ctx context.Context, userIDs []uint, offset, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64
	if len(userIDs) == 0 {
		return posts, 0, nil
	}
	q := r.db.WithContext(ctx).Model(&models.Post{}).Where("user_id IN ?", userIDs).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Media").
		Order("created_at DESC, id DESC").
		Scopes(paginate(offset, limit)).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// DeletePost soft-deletes the post and its media rows
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("post_id = ?", id).Delete(&models.PostMedia{}).Error
	})
}
