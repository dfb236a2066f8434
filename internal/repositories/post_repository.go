package repositories

import (
	"context"
	"strconv"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/slug"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// Orderings accepted by PostQuery.
const (
	OrderNewestCreated   = "posts.created_at DESC, posts.id DESC"
	OrderNewestPublished = "posts.published_at DESC, posts.id DESC"
)

const postColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count"

// PostQuery narrows a post listing. Zero values mean "no restriction".
type PostQuery struct {
	Published *bool
	AuthorID  uint
	AuthorIDs []uint
	TagSlug   string
	Search    string
	OrderBy   string
	Offset    int
	Limit     int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post, tagNames []string) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPostByIDOrSlug(ctx context.Context, key string) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post, tagNames *[]string) error
	DeletePost(ctx context.Context, id uint) error
	ListPosts(ctx context.Context, q PostQuery) ([]models.Post, int64, error)
	SearchPosts(ctx context.Context, query string, limit int) ([]models.Post, error)
	CountPublishedByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts the post and links its tags in one transaction, then
// reloads it with author, tags and counts.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}
		post.Tags = tags
		return tx.Omit("Author").Create(post).Error
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, post)
}

// GetPostByID retrieves a post by ID
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.enriched(r.db.WithContext(ctx)).Where("posts.id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostByIDOrSlug looks a post up by numeric ID or by slug.
func (r *PostgresPostRepository) GetPostByIDOrSlug(ctx context.Context, key string) (*models.Post, error) {
	db := r.enriched(r.db.WithContext(ctx))
	if id, err := strconv.ParseUint(key, 10, 64); err == nil {
		db = db.Where("posts.id = ? OR posts.slug = ?", id, key)
	} else {
		db = db.Where("posts.slug = ?", key)
	}

	var post models.Post
	if err := db.First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes the mutable columns and, when tagNames is non-nil, replaces
// the tag set. Both happen in one transaction.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post, tagNames *[]string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{ID: post.ID}).Updates(map[string]interface{}{
			"title":        post.Title,
			"content":      post.Content,
			"excerpt":      post.Excerpt,
			"cover_image":  post.CoverImage,
			"published":    post.Published,
			"published_at": post.PublishedAt,
			"read_time":    post.ReadTime,
		}).Error
		if err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}

		tags, err := upsertTags(tx, *tagNames)
		if err != nil {
			return err
		}
		assoc := tx.Model(&models.Post{ID: post.ID}).Association("Tags")
		if len(tags) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(tags)
	})
	if err != nil {
		return err
	}
	return r.reload(ctx, post)
}

// DeletePost removes the post; comments, likes and bookmarks go with it through
// their foreign keys.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListPosts returns one page of posts matching q and the total match count.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, q PostQuery) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)
	order := q.OrderBy
	if order == "" {
		order = OrderNewestCreated
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.enriched(r.filter(gctx, q)).
			Order(order).
			Scopes(paginate(q.Offset, q.Limit)).
			Find(&posts).Error
	})
	g.Go(func() error {
		return r.filter(gctx, q).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// SearchPosts matches published posts on title, content or excerpt.
func (r *PostgresPostRepository) SearchPosts(ctx context.Context, query string, limit int) ([]models.Post, error) {
	published := true
	var posts []models.Post
	err := r.enriched(r.filter(ctx, PostQuery{Published: &published, Search: query})).
		Order(OrderNewestPublished).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPublishedByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND published = ?", authorID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) filter(ctx context.Context, q PostQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Post{})
	if q.Published != nil {
		db = db.Where("posts.published = ?", *q.Published)
	}
	if q.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", q.AuthorID)
	}
	if q.AuthorIDs != nil {
		db = db.Where("posts.author_id IN ?", q.AuthorIDs)
	}
	if q.TagSlug != "" {
		db = db.Where("posts.id IN (?)", r.db.Table("post_tags").
			Select("post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", q.TagSlug))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		p := containsPattern(search)
		db = db.Where("("+ilike("posts.title")+" OR "+ilike("posts.content")+" OR "+ilike("posts.excerpt")+")", p, p, p)
	}
	return db
}

func (r *PostgresPostRepository) enriched(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Post{}).
		Select(postColumns).
		Preload("Author", authorSummary).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name ASC") })
}

// reload reads the post back from the primary so a lagging replica never
// answers for a write that just happened.
func (r *PostgresPostRepository) reload(ctx context.Context, post *models.Post) error {
	var fresh models.Post
	err := r.enriched(r.db.WithContext(ctx).Clauses(dbresolver.Write)).
		Where("posts.id = ?", post.ID).
		First(&fresh).Error
	if err != nil {
		return err
	}
	*post = fresh
	return nil
}

// upsertTags get-or-creates one tag per distinct normalised slug.
func upsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		s := slug.ForTag(name)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true

		tag := models.Tag{Name: name, Slug: s}
		err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
			Create(&tag).Error
		if err != nil {
			return nil, err
		}
		var stored models.Tag
		if err := tx.Where("slug = ?", s).First(&stored).Error; err != nil {
			return nil, err
		}
		tags = append(tags, stored)
	}
	return tags, nil
}
