package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts", h.GetPosts, guards.Optional)
	g.POST("/posts", h.CreatePost, guards.Required)
	g.GET("/posts/:id", h.GetPost, guards.Optional)
	g.PUT("/posts/:id", h.UpdatePost, guards.Required)
	g.DELETE("/posts/:id", h.DeletePost, guards.Required)
}

// GetPosts lists published posts, or the caller's own posts when draft=true
func (h *PostHandler) GetPosts(c echo.Context) error {
	page, limit := pageParams(c)
	filter := models.PostFilter{
		Page:       page,
		Limit:      limit,
		Tag:        c.QueryParam("tag"),
		Search:     c.QueryParam("search"),
		DraftsOnly: c.QueryParam("draft") == "true",
	}
	if raw := c.QueryParam("authorId"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return errs.NewValidation("Invalid author ID")
		}
		filter.AuthorID = uint(authorID)
	}

	res, err := h.postService.ListPosts(c.Request().Context(), filter, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.CreatePost(c.Request().Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"post": post})
}

// GetPost retrieves a post by ID or slug
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	post, err := h.postService.UpdatePost(c.Request().Context(), postID, middleware.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post": post})
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	if err := h.postService.DeletePost(c.Request().Context(), postID, middleware.CurrentUserID(c)); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Post deleted successfully")
}
