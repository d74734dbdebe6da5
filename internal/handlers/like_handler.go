package handlers

import (
	"net/http"
	"strconv"

	"github.com/inko-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like-toggle HTTP requests
type LikeHandler struct {
	toggleService *services.ToggleService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(toggleService *services.ToggleService) *LikeHandler {
	return &LikeHandler{toggleService: toggleService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/like", h.ToggleLike)
}

// ToggleLike flips the caller's like on a post and returns the new state.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	liked, err := h.toggleService.TogglePostLike(currentUserID, uint(postID))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": liked})
}
