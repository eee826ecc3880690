package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	relationships *services.RelationshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(relationships *services.RelationshipService) *FriendshipHandler {
	return &FriendshipHandler{relationships: relationships}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests", h.ListRequests)
	g.GET("/friends/requests/:id", h.GetFriendRequest)
	g.PUT("/friends/requests/:id/status", h.UpdateFriendRequestStatus)
	g.GET("/friends/suggestions", h.SuggestFriends)
	g.GET("/friends/mutual/:userId", h.MutualFriends)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:userId", h.Unfriend)
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req models.CreateFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.relationships.SendFriendRequest(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *FriendshipHandler) GetFriendRequest(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.relationships.GetFriendship(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// ListRequests filters by ?status= (default pending) and ?requestType=sent|received
func (h *FriendshipHandler) ListRequests(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	filter := repositories.RequestFilter{
		Status:    models.FriendshipStatus(c.QueryParam("status")),
		Direction: models.RequestDirection(c.QueryParam("requestType")),
	}

	page, err := h.relationships.ListRequests(c.Request().Context(), userID, filter, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// UpdateFriendRequestStatus accepts or rejects a friend request
func (h *FriendshipHandler) UpdateFriendRequestStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req models.UpdateFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	view, err := h.relationships.ApproveOrReject(c.Request().Context(), userID, id, models.FriendshipStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.relationships.Friends(c.Request().Context(), userID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *FriendshipHandler) SuggestFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.relationships.SuggestFriends(c.Request().Context(), userID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *FriendshipHandler) MutualFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	otherID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	p, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.relationships.MutualFriends(c.Request().Context(), userID, otherID, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Unfriend removes an accepted friendship with :userId
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	otherID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	if err := h.relationships.Unfollow(c.Request().Context(), userID, otherID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
