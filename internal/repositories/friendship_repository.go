package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/friendbook/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestGuard inspects the live row for a pair (nil when none) and vetoes a new request by returning an error.
type RequestGuard func(existing *models.Friendship) error

// RequestFilter narrows a request listing. An empty Status matches every status.
type RequestFilter struct {
	Status    models.FriendshipStatus
	Direction models.RequestDirection
}

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	RequestPair(ctx context.Context, requesterID, accepterID uint, guard RequestGuard) (*models.Friendship, error)
	GetFriendshipByID(ctx context.Context, id uint) (*models.Friendship, error)
	GetFriendshipWithUsers(ctx context.Context, id uint) (*models.Friendship, error)
	GetFriendshipByPair(ctx context.Context, a, b uint) (*models.Friendship, error)
	UpdateFriendship(ctx context.Context, f *models.Friendship) error
	DeleteFriendship(ctx context.Context, id uint) error
	ListRequests(ctx context.Context, userID uint, filter RequestFilter, offset, limit int) ([]models.Friendship, int64, error)
	GetFriendIDs(ctx context.Context, userID uint) ([]uint, error)
	GetFriendIDsOf(ctx context.Context, userIDs []uint) (map[uint][]uint, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// RequestPair locks the live row of the unordered pair, runs guard, then creates or
// overwrites it as pending. A concurrent insert loses on the partial unique index
// and is reported as ErrDuplicate.
func (r *PostgresFriendshipRepository) RequestPair(ctx context.Context, requesterID, accepterID uint, guard RequestGuard) (*models.Friendship, error) {
	var result *models.Friendship
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		low, high := models.NormalizePair(requesterID, accepterID)

		var existing models.Friendship
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("pair_low = ? AND pair_high = ?", low, high).
			First(&existing).Error

		switch {
		case err == nil:
			if err := guard(&existing); err != nil {
				return err
			}
			existing.RequesterID = requesterID
			existing.AccepterID = accepterID
			existing.Status = models.FriendshipPending
			existing.IsFriend = false
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = &existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := guard(nil); err != nil {
				return err
			}
			f := &models.Friendship{
				RequesterID: requesterID,
				AccepterID:  accepterID,
				Status:      models.FriendshipPending,
			}
			if err := tx.Create(f).Error; err != nil {
				return err
			}
			result = f
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

// GetFriendshipByID retrieves a live friendship row by ID
func (r *PostgresFriendshipRepository) GetFriendshipByID(ctx context.Context, id uint) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// GetFriendshipWithUsers also loads both sides of the pair
func (r *PostgresFriendshipRepository) GetFriendshipWithUsers(ctx context.Context, id uint) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.WithContext(ctx).Preload("Requester").Preload("Accepter").First(&f, id).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

// GetFriendshipByPair finds the live row for {a, b} regardless of direction
func (r *PostgresFriendshipRepository) GetFriendshipByPair(ctx context.Context, a, b uint) (*models.Friendship, error) {
	low, high := models.NormalizePair(a, b)
	var f models.Friendship
	if err := r.db.WithContext(ctx).Where("pair_low = ? AND pair_high = ?", low, high).First(&f).Error; err != nil {
		return nil, translate(err)
	}
	return &f, nil
}

func (r *PostgresFriendshipRepository) UpdateFriendship(ctx context.Context, f *models.Friendship) error {
	return translate(r.db.WithContext(ctx).Save(f).Error)
}

// DeleteFriendship soft-deletes a friendship row
func (r *PostgresFriendshipRepository) DeleteFriendship(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Friendship{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRequests returns the rows userID takes part in, newest first
func (r *PostgresFriendshipRepository) ListRequests(ctx context.Context, userID uint, filter RequestFilter, offset, limit int) ([]models.Friendship, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Friendship{})
	switch filter.Direction {
	case models.DirectionSent:
		q = q.Where("requester_id = ?", userID)
	case models.DirectionReceived:
		q = q.Where("accepter_id = ?", userID)
	default:
		q = q.Where("(requester_id = ? OR accepter_id = ?)", userID, userID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.Friendship
	if err := q.Order("updated_at DESC, id DESC").Scopes(paginate(offset, limit)).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// GetFriendIDs returns the ids of userID's accepted friends
func (r *PostgresFriendshipRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	friends, err := r.GetFriendIDsOf(ctx, []uint{userID})
	if err != nil {
		return nil, err
	}
	return friends[userID], nil
}

// GetFriendIDsOf returns the accepted friends of every id in userIDs
func (r *PostgresFriendshipRepository) GetFriendIDsOf(ctx context.Context, userIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}
	var rows []models.Friendship
	err := r.db.WithContext(ctx).
		Select("requester_id", "accepter_id").
		Where("status = ? AND is_friend = ?", models.FriendshipAccepted, true).
		Where("(requester_id IN ? OR accepter_id IN ?)", userIDs, userIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	wanted := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = true
	}
	others := make([]uint, 0, len(rows))
	for _, row := range rows {
		others = append(others, row.RequesterID, row.AccepterID)
	}
	active, err := r.liveUserIDs(ctx, others)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if wanted[row.RequesterID] && active[row.AccepterID] {
			result[row.RequesterID] = append(result[row.RequesterID], row.AccepterID)
		}
		if wanted[row.AccepterID] && active[row.RequesterID] {
			result[row.AccepterID] = append(result[row.AccepterID], row.RequesterID)
		}
	}
	return result, nil
}

// liveUserIDs keeps the ids whose user row is not soft-deleted
func (r *PostgresFriendshipRepository) liveUserIDs(ctx context.Context, ids []uint) (map[uint]bool, error) {
	active := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return active, nil
	}
	var found []uint
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		active[id] = true
	}
	return active, nil
}
