package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// notifyTimeout bounds the inbox write so a slow store cannot stall the request.
const notifyTimeout = 2 * time.Second

// NotificationPage is one page of a user's inbox.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
	Pagination    models.Pagination     `json:"pagination"`
}

// NotificationService writes and reads the notification inbox. It is also the
// Notifier handed to the social and comment services.
type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	logger        zerolog.Logger
}

func NewNotificationService(notifications repositories.NotificationRepository, users repositories.UserRepository) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		logger:        log.With().Str("service", "NotificationService").Logger(),
	}
}

// Notify stores n, filling in the actor name and message. Failures are logged only.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if n.ActorID == n.RecipientID {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if n.ActorName == "" {
		if actor, err := s.users.GetUserByID(ctx, n.ActorID); err == nil {
			n.ActorName = actor.Name
		}
	}
	if n.Message == "" {
		n.Message = notificationMessage(n)
	}
	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		s.logger.Error().Err(err).
			Str("type", n.Type).
			Uint("recipientId", n.RecipientID).
			Msg("failed to store notification")
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint, page, limit int) (*NotificationPage, error) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.notifications.GetByRecipientID(ctx, userID, int64(offset(page, limit)), int64(limit))
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Notifications", err)
	}
	unread, err := s.notifications.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("count", "Notifications", err)
	}
	return &NotificationPage{
		Notifications: items,
		UnreadCount:   unread,
		Pagination:    newPagination(page, limit, total),
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID uint, id string) error {
	err := s.notifications.MarkAsRead(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return errs.NewNotFound("Notification")
	}
	if err != nil {
		return errs.NewDatabaseError("update", "Notification", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	if err := s.notifications.MarkAllAsRead(ctx, userID); err != nil {
		return errs.NewDatabaseError("update", "Notifications", err)
	}
	return nil
}

func notificationMessage(n *models.Notification) string {
	actor := n.ActorName
	if actor == "" {
		actor = "Someone"
	}
	switch n.Type {
	case models.NotificationFollow:
		return actor + " started following you"
	case models.NotificationLike:
		return actor + " liked your post"
	case models.NotificationComment:
		return actor + " commented on your post"
	case models.NotificationReply:
		return actor + " replied to your comment"
	}
	return actor + " interacted with you"
}
