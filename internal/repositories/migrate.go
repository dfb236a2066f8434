package repositories

import (
	"github.com/anonto42/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the relational schema, including the post_tags
// join table and the cascading foreign keys.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Bookmark{},
	)
}
