package repositories

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetThreadByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment and loads its author
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Replies").Create(comment).Error; err != nil {
		return err
	}
	return r.loadAuthor(ctx, comment)
}

// GetCommentByID retrieves a comment by ID
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author", authorSummary).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetThreadByPostID returns the top-level comments of a post, newest first, with
// two levels of replies, oldest first. Deeper replies are not loaded.
func (r *PostgresCommentRepository) GetThreadByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Author", authorSummary).
		Preload("Replies", oldestFirst).
		Preload("Replies.Author", authorSummary).
		Preload("Replies.Replies", oldestFirst).
		Preload("Replies.Replies.Author", authorSummary).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// UpdateComment writes the comment content
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{ID: comment.ID}).
		Update("content", comment.Content).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Preload("Author", authorSummary).
		First(comment, comment.ID).Error
}

// DeleteComment deletes a comment by ID; replies go with it through parent_id
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) loadAuthor(ctx context.Context, comment *models.Comment) error {
	var author models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Scopes(authorSummary).
		First(&author, comment.AuthorID).Error
	if err != nil {
		return err
	}
	comment.Author = &author
	return nil
}

func oldestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}
