package handlers

import (
	"net/http"
	"strconv"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyService *services.StoryService
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/view", h.RecordView)
}

// GetStories returns the author-grouped active stories for the current user.
func (h *StoryHandler) GetStories(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	groups, err := h.storyService.StoriesForViewer(currentUserID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"stories": groups})
}

// CreateStory uploads the media and creates a story, notifying followers.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story, err := h.storyService.CreateStory(c.Request().Context(), currentUserID, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "story": story})
}

// RecordView records that the current user viewed a story. Idempotent.
func (h *StoryHandler) RecordView(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid story ID")
	}

	if err := h.storyService.RecordView(currentUserID, uint(storyID)); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
