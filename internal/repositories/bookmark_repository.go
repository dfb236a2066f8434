package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for reading list operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, postID uint) error
	IsBookmarked(ctx context.Context, userID, postID uint) (bool, error)
	ListBookmarkedPosts(ctx context.Context, userID uint, offset, limit int) ([]models.Post, int64, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// ListBookmarkedPosts returns the posts userID bookmarked that are published or
// their own, newest bookmark first.
func (r *PostgresBookmarkRepository) ListBookmarkedPosts(ctx context.Context, userID uint, offset, limit int) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)
	visible := func(db *gorm.DB) *gorm.DB {
		return db.Model(&models.Post{}).
			Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
			Where("bookmarks.user_id = ?", userID).
			Where("posts.published = ? OR posts.author_id = ?", true, userID)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Scopes(visible).
			Select(postColumns).
			Preload("Author", authorSummary).
			Preload("Tags").
			Order("bookmarks.created_at DESC, bookmarks.id DESC").
			Scopes(paginate(offset, limit)).
			Find(&posts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Scopes(visible).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
