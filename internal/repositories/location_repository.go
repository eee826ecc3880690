package repositories

import (
	"context"

	"github.com/anonto42/friendbook/backend/internal/models"
	"gorm.io/gorm"
)

// LocationRepository reads the city and country reference tables
type LocationRepository interface {
	GetCountries(ctx context.Context, offset, limit int) ([]models.Country, int64, error)
	GetCities(ctx context.Context, countryID uint, offset, limit int) ([]models.City, int64, error)
	GetCountryByID(ctx context.Context, id uint) (*models.Country, error)
	GetCityByID(ctx context.Context, id uint) (*models.City, error)
}

type PostgresLocationRepository struct {
	db *gorm.DB
}

func NewPostgresLocationRepository(db *gorm.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{db: db}
}

// GetCountries pages countries alphabetically
func (r *PostgresLocationRepository) GetCountries(ctx context.Context, offset, limit int) ([]models.Country, int64, error) {
	var countries []models.Country
	var total int64
	q := r.db.WithContext(ctx).Model(&models.Country{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("country_name, id").Scopes(paginate(offset, limit)).Find(&countries).Error; err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

// GetCities pages cities alphabetically; a zero countryID lists every country's cities
func (r *PostgresLocationRepository) GetCities(ctx context.Context, countryID uint, offset, limit int) ([]models.City, int64, error) {
	var cities []models.City
	var total int64
	q := r.db.WithContext(ctx).Model(&models.City{})
	if countryID != 0 {
		q = q.Where("country_id = ?", countryID)
	}
	q = q.Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("city_name, id").Scopes(paginate(offset, limit)).Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

func (r *PostgresLocationRepository) GetCountryByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return nil, translate(err)
	}
	return &country, nil
}

func (r *PostgresLocationRepository) GetCityByID(ctx context.Context, id uint) (*models.City, error) {
	var city models.City
	if err := r.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, translate(err)
	}
	return &city, nil
}
