package handlers

import (
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/middleware"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, guards Guards) {
	g.GET("/notifications", h.GetNotifications, guards.Required)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, guards.Required)
	g.PUT("/notifications/:id/read", h.MarkAsRead, guards.Required)
}

// GetNotifications returns one page of the caller's inbox with its unread count
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, limit := pageParams(c)
	res, err := h.notificationService.List(c.Request().Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	err := h.notificationService.MarkRead(c.Request().Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return message(c, http.StatusOK, "Notification marked as read")
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notificationService.MarkAllRead(c.Request().Context(), middleware.CurrentUserID(c)); err != nil {
		return err
	}
	return message(c, http.StatusOK, "All notifications marked as read")
}
