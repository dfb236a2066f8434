package models

import "time"

// Follow represents a directed following edge; the follower's feed includes the followed author's posts.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"followerId" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"followingId" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"createdAt"`
}
