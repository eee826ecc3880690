package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests related to stories
type StoryHandler struct {
	stories *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(stories *services.StoryService) *StoryHandler {
	return &StoryHandler{stories: stories}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/:id", h.GetStory)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// CreateStory takes one "media" file and an optional "writtenText".
func (h *StoryHandler) CreateStory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	file, err := formFile(c, "media")
	if err != nil {
		return err
	}

	story, err := h.stories.AddStory(c.Request().Context(), userID, c.FormValue("writtenText"), file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) GetStory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	story, err := h.stories.GetStory(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) DeleteStory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	if err := h.stories.DeleteStory(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
