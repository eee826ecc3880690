package services

import (
	"errors"

	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
)

// notFound turns a missing-record error into a 404 entry and passes anything else through.
func notFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(msg)
	}
	return err
}

// exists reports whether err is nil, treating ErrNotFound as a plain false.
func exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrNotFound):
		return false, nil
	}
	return false, err
}
