// Package services holds the business rules behind the HTTP handlers: ownership
// and visibility checks, publishing transitions, social graph toggles and feeds.
// Services return *errs.ApiErr for every failure a caller should see.
package services

import (
	"context"
	"math"

	"github.com/anonto42/inkwell/backend/internal/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// SearchMinQueryLength is the shortest trimmed query search will run.
	SearchMinQueryLength = 2
	SearchResultLimit    = 10
)

// Notifier receives social events. Notify never fails the triggering call.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification)
}

// NopNotifier drops every event. Used when notifications are disabled.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, *models.Notification) {}

// NormalizePage clamps page to >= 1 and limit to 1..MaxPageSize, defaulting limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func offset(page, limit int) int {
	return (page - 1) * limit
}

func newPagination(page, limit int, total int64) models.Pagination {
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
