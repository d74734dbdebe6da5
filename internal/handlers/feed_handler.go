package handlers

import (
	"net/http"

	"github.com/inko-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/explore", h.GetExplore)
}

// GetFeed returns the personalized feed for the current user.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	posts, err := h.feedService.PersonalFeed(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}

// GetExplore returns the global recency-ordered feed.
func (h *FeedHandler) GetExplore(c echo.Context) error {
	posts, err := h.feedService.ExploreFeed()
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts})
}
