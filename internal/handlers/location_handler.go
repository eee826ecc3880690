package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LocationHandler serves the public city and country lists
type LocationHandler struct {
	locations *services.LocationService
}

func NewLocationHandler(locations *services.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// RegisterLocationRoutes mounts the lists next to signup, before any session exists
func (h *LocationHandler) RegisterLocationRoutes(g *echo.Group) {
	g.GET("/countries", h.GetCountries)
	g.GET("/cities", h.GetCities)
}

func (h *LocationHandler) GetCountries(c echo.Context) error {
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.locations.Countries(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// GetCities accepts an optional ?countryId= filter
func (h *LocationHandler) GetCities(c echo.Context) error {
	var q models.CityQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid countryId")
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.locations.Cities(c.Request().Context(), q.CountryID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
