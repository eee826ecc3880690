package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.UpsertComment)
	g.GET("/comments/:id", h.GetComment)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.GET("/posts/:id/comments", h.GetPostComments)
}

// UpsertComment creates a comment, or edits one when commentId is set
func (h *CommentHandler) UpsertComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.UpsertCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.UpsertComment(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	status := http.StatusCreated
	if req.CommentID != 0 {
		status = http.StatusOK
	}
	return c.JSON(status, comment)
}

func (h *CommentHandler) GetComment(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	comment, err := h.comments.GetComment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment deletes a comment written by the caller or left on the caller's post
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.comments.DeleteComment(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPostComments pages the comments of a post, oldest first
func (h *CommentHandler) GetPostComments(c echo.Context) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.comments.PostComments(c.Request().Context(), postID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
