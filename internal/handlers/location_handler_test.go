package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationRoutes_RejectMalformedQuery(t *testing.T) {
	e := newTestServer()
	tests := []struct {
		target string
		want   string
	}{
		{"/api/v1/auth/cities?countryId=abc", `{"message":"Invalid countryId"}`},
		{"/api/v1/auth/countries?pageNumber=x", `{"message":"Invalid pagination parameters"}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.target)
		assert.JSONEq(t, tt.want, rec.Body.String(), tt.target)
	}
}
