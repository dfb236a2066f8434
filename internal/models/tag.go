package models

import "time"

// Tag is a category label, created the first time a post references its slug.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	PostCount int64     `json:"postCount" gorm:"->;-:migration"`
	CreatedAt time.Time `json:"createdAt"`
}
