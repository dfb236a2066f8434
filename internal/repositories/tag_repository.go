package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

const tagColumns = "tags.id, tags.name, tags.slug, tags.created_at, COUNT(post_tags.post_id) AS post_count"

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	TrendingTags(ctx context.Context, limit int) ([]models.Tag, error)
	SearchTags(ctx context.Context, query string, limit int) ([]models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// TrendingTags lists tags by descending linked-post count
func (r *PostgresTagRepository) TrendingTags(ctx context.Context, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.withPostCount(ctx).
		Order("post_count DESC, tags.name ASC").
		Scopes(paginate(0, limit)).
		Find(&tags).Error
	return tags, err
}

// SearchTags matches name or slug case-insensitively, most used first
func (r *PostgresTagRepository) SearchTags(ctx context.Context, query string, limit int) ([]models.Tag, error) {
	var tags []models.Tag
	p := containsPattern(query)
	err := r.withPostCount(ctx).
		Where(ilike("tags.name")+" OR "+ilike("tags.slug"), p, p).
		Order("post_count DESC, tags.name ASC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

func (r *PostgresTagRepository) withPostCount(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Tag{}).
		Select(tagColumns).
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id, tags.name, tags.slug, tags.created_at")
}
