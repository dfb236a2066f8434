package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the personal feed, search and tag discovery
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, guards Guards) {
	g.GET("/feed", h.GetFeed, guards.Required)
	g.GET("/search", h.Search)
	g.GET("/tags", h.GetTags)
}

// GetFeed returns posts by the authors the caller follows
func (h *FeedHandler) GetFeed(c echo.Context) error {
	page, limit := pageParams(c)
	res, err := h.feedService.PersonalFeed(c.Request().Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Search matches posts, users and tags; type narrows it to one category
func (h *FeedHandler) Search(c echo.Context) error {
	kind := c.QueryParam("type")
	switch kind {
	case "", services.SearchAll, services.SearchPosts, services.SearchUsers, services.SearchTags:
	default:
		return errs.NewValidation("type must be one of: all posts users tags")
	}
	res, err := h.feedService.Search(c.Request().Context(), c.QueryParam("q"), kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// GetTags lists tags by how many posts use them
func (h *FeedHandler) GetTags(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return errs.NewValidation("Invalid limit")
		}
		limit = n
	}
	tags, err := h.feedService.TrendingTags(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"tags": tags})
}
