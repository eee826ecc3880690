package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the post and story feeds
type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/stories/feed", h.GetStoryFeed)
}

// GetFeed returns own and friends' posts; ?ownPostsOnly=true limits it to the caller's.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	var q models.FeedQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid ownPostsOnly")
	}

	page, err := h.feed.PostFeed(c.Request().Context(), userID, q.OwnPostsOnly, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *FeedHandler) GetStoryFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.feed.StoryFeed(c.Request().Context(), userID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
