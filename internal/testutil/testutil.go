// Package testutil provides a throwaway SQLite database, fixtures and an in-memory
// notification store for package tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userSeq atomic.Int64

// NewDB opens a migrated SQLite database in the test's temp dir with foreign keys on.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "inkwell.db") + "?_foreign_keys=1&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateUser inserts a user with a unique email.
func CreateUser(t testing.TB, db *gorm.DB, name string) *models.User {
	t.Helper()
	n := userSeq.Add(1)
	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Password: "not-a-real-hash",
		Name:     name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a post directly, bypassing slug and read-time rules.
func CreatePost(t testing.TB, db *gorm.DB, authorID uint, title string, published bool) *models.Post {
	t.Helper()
	post := &models.Post{
		Slug:      fmt.Sprintf("fixture-%d-%d", authorID, time.Now().UnixNano()),
		Title:     title,
		Content:   title + " body",
		Published: published,
		ReadTime:  1,
		AuthorID:  authorID,
	}
	if published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// NotificationStore is an in-memory repositories.NotificationRepository.
type NotificationStore struct {
	mu    sync.Mutex
	items []models.Notification
	// Err, when set, is returned by every call.
	Err error
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{}
}

func (s *NotificationStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	s.items = append(s.items, *n)
	return nil
}

func (s *NotificationStore) GetByRecipientID(_ context.Context, recipientID uint, skip, limit int64) ([]models.Notification, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, 0, s.Err
	}
	mine := s.forRecipient(recipientID)
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })
	total := int64(len(mine))
	if skip >= total {
		return []models.Notification{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return mine[skip:end], total, nil
}

func (s *NotificationStore) GetUnreadCount(_ context.Context, recipientID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var unread int64
	for _, n := range s.forRecipient(recipientID) {
		if !n.IsRead {
			unread++
		}
	}
	return unread, nil
}

func (s *NotificationStore) MarkAsRead(_ context.Context, recipientID uint, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repositories.ErrNotificationNotFound
	}
	for i := range s.items {
		if s.items[i].ID == oid && s.items[i].RecipientID == recipientID {
			s.items[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (s *NotificationStore) MarkAllAsRead(_ context.Context, recipientID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.items {
		if s.items[i].RecipientID == recipientID {
			s.items[i].IsRead = true
		}
	}
	return nil
}

// All returns a copy of every stored notification in insertion order.
func (s *NotificationStore) All() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.items...)
}

func (s *NotificationStore) forRecipient(recipientID uint) []models.Notification {
	var mine []models.Notification
	for _, n := range s.items {
		if n.RecipientID == recipientID {
			mine = append(mine, n)
		}
	}
	return mine
}
