package services

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/internal/storage"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/anonto42/friendbook/backend/pkg/pagination"
)

const (
	msgEmailImmutable = "Email Can Not Be Changed."
	msgAvatarNotImage = "Avatar Must Be An Image."
	msgEmptySearch    = "Search Query Is Required."
	msgCityNotFound   = "City Not Found."
	msgCountryMissing = "Country Not Found."
	msgCityElsewhere  = "City Does Not Belong To The Country."

	avatarFolder = "avatars"
)

// UserService manages profiles.
type UserService struct {
	users     repositories.UserRepository
	locations repositories.LocationRepository
	blobs     BlobStore
}

func NewUserService(users repositories.UserRepository, locations repositories.LocationRepository, blobs BlobStore) *UserService {
	return &UserService{users: users, locations: locations, blobs: blobs}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, p pagination.Params) (pagination.Page[models.User], error) {
	users, total, err := s.users.GetUsers(ctx, p.Offset(), p.Limit())
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	return pagination.NewPage(users, total), nil
}

// UpdateProfile applies the non-empty fields of req.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	if req.Email != "" && !strings.EqualFold(req.Email, user.Email) {
		return nil, apperrors.Conflict(msgEmailImmutable)
	}
	if err := s.applyLocation(ctx, user, req.CountryID, req.CityID); err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		user.LastName = strings.TrimSpace(req.LastName)
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Hobbies != "" {
		user.Hobbies = req.Hobbies
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.BirthDate != nil {
		user.BirthDate = req.BirthDate
	}
	if req.RelationStatus != nil {
		user.RelationStatus = req.RelationStatus
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.Unauthorized(msgAlreadyRegistered)
		}
		return nil, err
	}
	return user, nil
}

// applyLocation checks the referenced rows and sets them on user. A city without a country
// takes its country; changing only the country clears a city that no longer fits.
func (s *UserService) applyLocation(ctx context.Context, user *models.User, countryID, cityID *uint) error {
	if countryID == nil && cityID == nil {
		return nil
	}
	var c apperrors.Collector
	if countryID != nil {
		_, err := s.locations.GetCountryByID(ctx, *countryID)
		ok, err := exists(err)
		if err != nil {
			return err
		}
		c.Check(ok, http.StatusNotFound, msgCountryMissing)
	}

	var city *models.City
	if cityID != nil {
		found, err := s.locations.GetCityByID(ctx, *cityID)
		ok, err := exists(err)
		if err != nil {
			return err
		}
		c.Check(ok, http.StatusNotFound, msgCityNotFound)
		if ok {
			city = found
			if countryID != nil && city.CountryID != *countryID {
				c.Add(http.StatusBadRequest, msgCityElsewhere)
			}
		}
	}
	if err := c.Err(); err != nil {
		return err
	}

	if city != nil {
		user.CityID = &city.ID
		user.CountryID = &city.CountryID
		return nil
	}
	if user.CountryID == nil || *user.CountryID != *countryID {
		user.CityID = nil
	}
	user.CountryID = countryID
	return nil
}

// UploadAvatar replaces the user's avatar; the previous blob is removed best-effort.
func (s *UserService) UploadAvatar(ctx context.Context, id uint, file Upload) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgUserNotFound)
	}
	if storage.MediaType(file.Name) != storage.MediaImage {
		return nil, apperrors.New(http.StatusBadRequest, msgAvatarNotImage)
	}

	path, err := s.blobs.Save(ctx, avatarFolder, file.Data, file.Name)
	if err != nil {
		return nil, err
	}
	previous := user.Avatar
	user.Avatar = path
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	if previous != "" {
		if err := s.blobs.Delete(ctx, previous); err != nil {
			log.Printf("Failed to delete blob %s: %v\n", previous, err)
		}
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return notFound(s.users.DeleteUser(ctx, id), msgUserNotFound)
}

func (s *UserService) SearchUsers(ctx context.Context, query string, p pagination.Params) (pagination.Page[models.User], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return pagination.Page[models.User]{}, apperrors.New(http.StatusBadRequest, msgEmptySearch)
	}
	users, total, err := s.users.SearchUsers(ctx, query, p.Offset(), p.Limit())
	if err != nil {
		return pagination.Page[models.User]{}, err
	}
	return pagination.NewPage(users, total), nil
}
