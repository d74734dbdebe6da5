package handlers

import (
	"net/http"
	"strconv"

	"github.com/inko-social/backend/internal/models"
	"github.com/inko-social/backend/internal/repositories"
	"github.com/inko-social/backend/internal/services"
	"github.com/inko-social/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

// maxBioLen is the server-side truncation limit for the profile bio.
const maxBioLen = 200

// searchLimit caps user-search results.
const searchLimit = 20

// UserHandler handles profile and user-search HTTP requests
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	feedService      *services.FeedService
	storage          storage.ObjectStorage
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, feedService *services.FeedService, store storage.ObjectStorage) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		feedService:      feedService,
		storage:          store,
	}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.POST("/profile/avatar", h.UploadAvatar)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetProfile)
}

// GetOwnProfile returns the authenticated user's profile.
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return h.renderProfile(c, currentUserID)
}

// GetProfile returns another user's profile by id.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return h.renderProfile(c, uint(id))
}

// renderProfile assembles profile + posts + follower/following counts.
func (h *UserHandler) renderProfile(c echo.Context, userID uint) error {
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		return httpError(err)
	}

	posts, err := h.feedService.UserPosts(userID)
	if err != nil {
		return httpError(err)
	}

	followersCount, err := h.followRepository.GetFollowersCount(userID)
	if err != nil {
		return httpError(err)
	}
	followingCount, err := h.followRepository.GetFollowingCount(userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"profile":         user.ToProfile(),
		"posts":           posts,
		"posts_count":     len(posts),
		"followers_count": followersCount,
		"following_count": followingCount,
	})
}

// UpdateProfile updates the authenticated user's bio.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}

	user.Bio = services.Truncate(req.Bio, maxBioLen)

	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user.ToProfile()})
}

// UploadAvatar stores a new profile picture and updates the avatar URL.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UploadAvatarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	data, err := storage.DecodeMedia(req.File)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file data")
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = "avatar.jpg"
	}

	avatarURL, err := h.storage.Upload(c.Request().Context(), storage.BucketAvatars, fileName, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to upload file")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return httpError(err)
	}
	user.AvatarURL = avatarURL
	if err := h.userRepository.UpdateUser(user); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user.ToProfile()})
}

// SearchUsers searches users by username, excluding the searcher, each
// result annotated with the searcher's follow state.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	query := c.QueryParam("query")
	if query == "" {
		return c.JSON(http.StatusOK, echo.Map{"users": []models.SearchResult{}})
	}

	users, err := h.userRepository.SearchUsers(query, currentUserID, searchLimit)
	if err != nil {
		return httpError(err)
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return httpError(err)
	}
	following := make(map[uint]bool, len(followingIDs))
	for _, id := range followingIDs {
		following[id] = true
	}

	results := make([]models.SearchResult, len(users))
	for i, u := range users {
		results[i] = models.SearchResult{
			UserCompact: u.ToCompact(),
			Bio:         u.Bio,
			IsFollowing: following[u.ID],
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": results})
}
