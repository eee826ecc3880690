package services

import (
	"context"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

// LocationService serves the city and country pick lists used by signup and profile forms.
type LocationService struct {
	locations repositories.LocationRepository
}

func NewLocationService(locations repositories.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) Countries(ctx context.Context, p pagination.Params) (pagination.Page[models.Country], error) {
	rows, total, err := s.locations.GetCountries(ctx, p.Offset(), p.Limit())
	if err != nil {
		return pagination.Page[models.Country]{}, err
	}
	return pagination.NewPage(rows, total), nil
}

// Cities pages the cities of one country, or of all countries when countryID is zero.
func (s *LocationService) Cities(ctx context.Context, countryID uint, p pagination.Params) (pagination.Page[models.City], error) {
	if countryID != 0 {
		if _, err := s.locations.GetCountryByID(ctx, countryID); err != nil {
			return pagination.Page[models.City]{}, notFound(err, msgCountryMissing)
		}
	}
	rows, total, err := s.locations.GetCities(ctx, countryID, p.Offset(), p.Limit())
	if err != nil {
		return pagination.Page[models.City]{}, err
	}
	return pagination.NewPage(rows, total), nil
}
