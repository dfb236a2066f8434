package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler serves the reading list
type BookmarkHandler struct {
	socialService *services.SocialService
}

func NewBookmarkHandler(socialService *services.SocialService) *BookmarkHandler {
	return &BookmarkHandler{socialService: socialService}
}

func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts/:id/bookmark", h.GetBookmarkStatus, guards.Optional)
	g.POST("/posts/:id/bookmark", h.BookmarkPost, guards.Required)
	g.DELETE("/posts/:id/bookmark", h.UnbookmarkPost, guards.Required)
	g.GET("/bookmarks", h.GetBookmarks, guards.Required)
}

func (h *BookmarkHandler) BookmarkPost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.socialService.Bookmark(c.Request().Context(), middleware.CurrentUserID(c), postID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Post bookmarked successfully")
}

func (h *BookmarkHandler) UnbookmarkPost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.socialService.Unbookmark(c.Request().Context(), middleware.CurrentUserID(c), postID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Bookmark removed successfully")
}

// GetBookmarkStatus reports whether the caller saved the post; anonymous callers never have
func (h *BookmarkHandler) GetBookmarkStatus(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	saved, err := h.socialService.IsBookmarked(c.Request().Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"isBookmarked": saved})
}

func (h *BookmarkHandler) GetBookmarks(c echo.Context) error {
	page, limit := pageParams(c)
	res, err := h.socialService.Bookmarks(c.Request().Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
