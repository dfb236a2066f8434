package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	userService   *services.UserService
	postService   *services.PostService
	socialService *services.SocialService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService, postService *services.PostService, socialService *services.SocialService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		postService:   postService,
		socialService: socialService,
	}
}

// RegisterProfileRoutes registers profile routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, guards Guards) {
	g.GET("/users/:id", h.GetProfile, guards.Optional)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.PUT("/profile", h.UpdateProfile, guards.Required)
}

// GetProfile returns a user with counts and whether the caller follows them
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), userID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": profile})
}

// GetUserPosts lists a user's published posts
func (h *UserHandler) GetUserPosts(c echo.Context) error {
	userID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	page, limit := pageParams(c)
	res, err := h.postService.ListUserPosts(c.Request().Context(), userID, page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	userID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	users, err := h.socialService.Followers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

func (h *UserHandler) GetFollowing(c echo.Context) error {
	userID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	users, err := h.socialService.Following(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// UpdateProfile patches the caller's name, bio or image
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.userService.UpdateProfile(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
