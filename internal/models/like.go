package models

import "time"

// Like records that a user likes a post. The (post, user) pair is unique.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"postId" gorm:"not null;index;uniqueIndex:idx_like_post_user"`
	UserID    uint      `json:"userId" gorm:"not null;index;uniqueIndex:idx_like_post_user"`
	CreatedAt time.Time `json:"createdAt"`
}
