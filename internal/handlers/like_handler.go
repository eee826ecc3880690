package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
	g.GET("/posts/:id/likes", h.GetPostLikes)
	g.GET("/likes/:id", h.GetLike)
}

// ToggleLike likes the post, or unlikes it when the caller already does
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	like, err := h.likes.ToggleLike(c.Request().Context(), userID, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, like)
}

// GetPostLikes lists the users liking a post
func (h *LikeHandler) GetPostLikes(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	likes, err := h.likes.PostLikes(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

func (h *LikeHandler) GetLike(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	like, err := h.likes.GetLike(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, like)
}
