package models

import "time"

// Bookmark is a post saved to a user's reading list.
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_bookmark_user_post"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_bookmark_user_post"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}
