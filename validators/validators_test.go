package validators

import (
	"net/http"
	"testing"

	"github.com/anonto42/friendbook/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := map[string]bool{
		"a@b.com":             true,
		"first.last+x@ex.org": true,
		"no-at-sign.com":      false,
		"a@b":                 false,
		"spaces in@b.com":     false,
		"":                    false,
	}
	for email, want := range tests {
		assert.Equal(t, want, IsValidEmail(email), email)
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Weak1", false},
		{"alllowercase1", false},
		{"NODIGITSHERE", false},
		{"Str0ngPass", true},
		{"Abcdefg1", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidPassword(tt.password), tt.password)
	}
}

type signup struct {
	Email    string `validate:"required,appemail"`
	Password string `validate:"required,password"`
	Name     string `validate:"required,min=2"`
}

func TestValidateAggregatesFieldErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(signup{Email: "bad", Password: "weak", Name: "x"})
	require.Error(t, err)

	agg, ok := apperrors.As(err)
	require.True(t, ok)
	require.Len(t, agg.Validations, 3)
	for _, v := range agg.Validations {
		assert.Equal(t, http.StatusBadRequest, v.StatusCode)
	}
	assert.Contains(t, agg.Validations[1].Message, "Password")
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()
	assert.NoError(t, cv.Validate(signup{Email: "a@b.com", Password: "Str0ngPass", Name: "Ann"}))
}
