package handlers

import (
	"net/http"
	"strconv"

	"github.com/inko-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-toggle HTTP requests
type FollowHandler struct {
	toggleService *services.ToggleService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(toggleService *services.ToggleService) *FollowHandler {
	return &FollowHandler{toggleService: toggleService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the caller's follow edge to a user and returns the new
// state.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	followed, err := h.toggleService.ToggleFollow(currentUserID, uint(targetID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "followed": followed})
}
