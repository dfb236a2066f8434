package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	socialService *services.SocialService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(socialService *services.SocialService) *FollowHandler {
	return &FollowHandler{socialService: socialService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, guards Guards) {
	g.POST("/users/:id/follow", h.FollowUser, guards.Required)
	g.DELETE("/users/:id/follow", h.UnfollowUser, guards.Required)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	targetID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.socialService.Follow(c.Request().Context(), middleware.CurrentUserID(c), targetID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Successfully followed user")
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	targetID, err := idParam(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.socialService.Unfollow(c.Request().Context(), middleware.CurrentUserID(c), targetID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Successfully unfollowed user")
}
