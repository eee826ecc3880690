package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewPostgresLocationRepository(db)

	nepal := &models.Country{CountryName: "Nepal", CountryCode: 977, ISO: "NP"}
	india := &models.Country{CountryName: "India", CountryCode: 91, ISO: "IN"}
	require.NoError(t, db.Create([]*models.Country{nepal, india}).Error)
	pune := &models.City{CityName: "Pune", CountryID: india.ID}
	delhi := &models.City{CityName: "Delhi", CountryID: india.ID}
	closed := &models.City{CityName: "Agra", CountryID: india.ID}
	pokhara := &models.City{CityName: "Pokhara", CountryID: nepal.ID}
	require.NoError(t, db.Create([]*models.City{pune, delhi, closed, pokhara}).Error)
	require.NoError(t, db.Delete(closed).Error)

	countries, total, err := repo.GetCountries(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, countries, 1)
	assert.Equal(t, "India", countries[0].CountryName)

	cities, total, err := repo.GetCities(ctx, india.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cities, 2)
	assert.Equal(t, "Delhi", cities[0].CityName)
	assert.Equal(t, "Pune", cities[1].CityName)

	_, total, err = repo.GetCities(ctx, 0, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, err = repo.GetCityByID(ctx, closed.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	found, err := repo.GetCountryByID(ctx, nepal.ID)
	require.NoError(t, err)
	assert.Equal(t, "NP", found.ISO)
}

func TestUserLocationColumns(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewPostgresUserRepository(db)
	india := &models.Country{CountryName: "India", ISO: "IN"}
	require.NoError(t, db.Create(india).Error)
	pune := &models.City{CityName: "Pune", CountryID: india.ID}
	require.NoError(t, db.Create(pune).Error)

	ann := seedUser(t, db, "Ann", "ann@example.com")
	single := 1
	ann.CityID, ann.CountryID, ann.RelationStatus = &pune.ID, &india.ID, &single
	require.NoError(t, users.UpdateUser(ctx, ann))

	stored, err := users.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CityID)
	assert.Equal(t, pune.ID, *stored.CityID)
	assert.Equal(t, india.ID, *stored.CountryID)
	assert.Equal(t, 1, *stored.RelationStatus)
}
