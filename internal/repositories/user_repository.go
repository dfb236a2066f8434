package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	LinkFirebaseUID(ctx context.Context, userID uint, firebaseUID string) error
	SearchUsers(ctx context.Context, query string, limit int) ([]models.UserSearchResult, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail is used by login, so it always reads from the primary.
func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Clauses(dbresolver.Write).
		Where("firebase_uid = ?", firebaseUID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser writes the profile columns of an existing user
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: user.ID}).Updates(map[string]interface{}{
		"name":  user.Name,
		"bio":   user.Bio,
		"image": user.Image,
	}).Error
}

func (r *PostgresUserRepository) LinkFirebaseUID(ctx context.Context, userID uint, firebaseUID string) error {
	return r.db.WithContext(ctx).Model(&models.User{ID: userID}).Update("firebase_uid", firebaseUID).Error
}

const userSearchColumns = "users.id, users.name, users.bio, users.image, users.created_at, " +
	"(SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id AND posts.published = ?) AS post_count, " +
	"(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id) AS follower_count, " +
	"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) AS following_count"

type userSearchRow struct {
	models.User
	PostCount      int64
	FollowerCount  int64
	FollowingCount int64
}

// SearchUsers matches name or bio case-insensitively. Post counts cover published posts only.
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserSearchResult, error) {
	var rows []userSearchRow
	p := containsPattern(query)
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(userSearchColumns, true).
		Where(ilike("users.name")+" OR "+ilike("users.bio"), p, p).
		Order("users.name ASC, users.id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]models.UserSearchResult, 0, len(rows))
	for _, row := range rows {
		users = append(users, models.UserSearchResult{
			User: row.User,
			Counts: models.UserCounts{
				Posts:     row.PostCount,
				Followers: row.FollowerCount,
				Following: row.FollowingCount,
			},
		})
	}
	return users, nil
}
