package models

import "time"

// Comment is a top-level comment (ParentID nil) or a reply to a comment on the same post.
// Deleting a comment deletes its replies through the parent_id foreign key.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"authorId" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty"`
	PostID    uint      `json:"postId" gorm:"not null;index"`
	ParentID  *uint     `json:"parentId" gorm:"index"`
	Replies   []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,max=1000"`
	ParentID *uint  `json:"parentId"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}
