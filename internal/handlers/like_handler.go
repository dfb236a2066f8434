package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like-related HTTP requests
type LikeHandler struct {
	socialService *services.SocialService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(socialService *services.SocialService) *LikeHandler {
	return &LikeHandler{socialService: socialService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts/:id/like", h.GetUserLikeStatusForPost, guards.Optional)
	g.POST("/posts/:id/like", h.LikePost, guards.Required)
	g.DELETE("/posts/:id/like", h.UnlikePost, guards.Required)
}

// LikePost likes a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.socialService.Like(c.Request().Context(), middleware.CurrentUserID(c), postID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Post liked successfully")
}

// UnlikePost unlikes a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.socialService.Unlike(c.Request().Context(), middleware.CurrentUserID(c), postID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Post unliked successfully")
}

// GetUserLikeStatusForPost reports whether the caller likes the post; anonymous callers never do
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	liked, err := h.socialService.IsLiked(c.Request().Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		return err
	}
	count, err := h.socialService.LikeCount(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"isLiked": liked, "likeCount": count})
}
