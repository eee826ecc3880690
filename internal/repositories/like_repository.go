package repositories

import (
	"context"

	"github.com/anonto42/friendbook/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like operations
type LikeRepository interface {
	GetLikeByID(ctx context.Context, id uint) (*models.Like, error)
	GetLike(ctx context.Context, postID, userID uint) (*models.Like, error)
	SaveLike(ctx context.Context, like *models.Like) error
	GetLikedUserIDs(ctx context.Context, postID uint) ([]uint, error)
	CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) GetLikeByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

// GetLike returns the toggle row for a post/user pair
func (r *PostgresLikeRepository) GetLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	if err := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error; err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

// SaveLike inserts or updates the toggle row
func (r *PostgresLikeRepository) SaveLike(ctx context.Context, like *models.Like) error {
	return translate(r.db.WithContext(ctx).Save(like).Error)
}

// GetLikedUserIDs lists users whose toggle is currently on, oldest first
func (r *PostgresLikeRepository) GetLikedUserIDs(ctx context.Context, postID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND liked = ?", postID, true).
		Order("updated_at ASC, id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *PostgresLikeRepository) CountByPostIDs(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	return countByPost(ctx, r.db.Model(&models.Like{}).Where("liked = ?", true), postIDs)
}
