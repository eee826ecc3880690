package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, header string) (*models.JwtCustomClaims, error) {
	t.Helper()
	signer := auth.NewTokenSigner("test-secret", "friendbook", time.Hour)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *models.JwtCustomClaims
	err := JWTAuthMiddleware(signer)(func(c echo.Context) error {
		seen, _ = c.Get("user").(*models.JwtCustomClaims)
		return nil
	})(c)
	return seen, err
}

func bearer(t *testing.T, secret string) string {
	t.Helper()
	token, err := auth.NewTokenSigner(secret, "friendbook", time.Hour).Issue(&models.User{ID: 7, Role: models.RoleUser})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	claims, err := run(t, bearer(t, "test-secret"))
	require.NoError(t, err)
	require.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing header", "", "Missing Authorization header"},
		{"wrong scheme", "Basic abc", "Invalid Authorization header format"},
		{"extra parts", "Bearer a b", "Invalid Authorization header format"},
		{"garbage token", "Bearer not-a-jwt", "Invalid token"},
		{"foreign secret", bearer(t, "other-secret"), "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := run(t, tt.header)
			assert.Nil(t, claims)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusUnauthorized, he.Code)
			assert.Equal(t, tt.message, he.Message)
		})
	}
}
