package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment-related HTTP requests
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, guards Guards) {
	g.GET("/posts/:id/comments", h.GetCommentsByPostID, guards.Optional)
	g.POST("/posts/:id/comments", h.CreateComment, guards.Required)
	g.PUT("/comments/:id", h.UpdateComment, guards.Required)
	g.DELETE("/comments/:id", h.DeleteComment, guards.Required)
}

// GetCommentsByPostID returns the comment tree of a post
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	comments, err := h.commentService.ListComments(c.Request().Context(), postID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": comments})
}

// CreateComment adds a comment or a reply to a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	postID, err := idParam(c, "id", "post")
	if err != nil {
		return err
	}
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.commentService.CreateComment(c.Request().Context(), middleware.CurrentUserID(c), postID, req.Content, req.ParentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"comment": comment})
}

// UpdateComment updates an existing comment
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	commentID, err := idParam(c, "id", "comment")
	if err != nil {
		return err
	}
	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	comment, err := h.commentService.UpdateComment(c.Request().Context(), commentID, middleware.CurrentUserID(c), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"comment": comment})
}

// DeleteComment deletes a comment and its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	commentID, err := idParam(c, "id", "comment")
	if err != nil {
		return err
	}
	if err := h.commentService.DeleteComment(c.Request().Context(), commentID, middleware.CurrentUserID(c)); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Comment deleted successfully")
}
