package services

import (
	"testing"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireValidations asserts err is an aggregate holding exactly want, in order.
func requireValidations(t *testing.T, err error, want ...apperrors.Validation) {
	t.Helper()
	agg, ok := apperrors.As(err)
	require.True(t, ok, "expected aggregate error, got %v", err)
	assert.Equal(t, want, agg.Validations)
}

func v(status int, msg string) apperrors.Validation {
	return apperrors.Validation{StatusCode: status, Message: msg}
}

func compactIDs(users []models.UserCompact) []uint {
	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.UserID
	}
	return ids
}
