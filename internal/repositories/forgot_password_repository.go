package repositories

import (
	"context"

	"github.com/anonto42/friendbook/backend/internal/models"
	"gorm.io/gorm"
)

// ForgotPasswordRepository stores one-time password reset codes
type ForgotPasswordRepository interface {
	// ReplaceToken tombstones the user's live codes and stores token as the only live one.
	ReplaceToken(ctx context.Context, token *models.ForgotPassword) error
	GetLatestToken(ctx context.Context, userID uint) (*models.ForgotPassword, error)
	ConsumeToken(ctx context.Context, id uint) error
}

type PostgresForgotPasswordRepository struct {
	db *gorm.DB
}

func NewPostgresForgotPasswordRepository(db *gorm.DB) *PostgresForgotPasswordRepository {
	return &PostgresForgotPasswordRepository{db: db}
}

func (r *PostgresForgotPasswordRepository) ReplaceToken(ctx context.Context, token *models.ForgotPassword) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&models.ForgotPassword{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

func (r *PostgresForgotPasswordRepository) GetLatestToken(ctx context.Context, userID uint) (*models.ForgotPassword, error) {
	var token models.ForgotPassword
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

// ConsumeToken soft-deletes a code after use or expiry
func (r *PostgresForgotPasswordRepository) ConsumeToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ForgotPassword{}, id).Error
}
