package models

import "time"

// Post is an article. Slug is assigned once at creation and never changes.
// PublishedAt is set on the first publish and kept when the post is unpublished.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Slug        string     `json:"slug" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Excerpt     *string    `json:"excerpt"`
	CoverImage  *string    `json:"coverImage"`
	Published   bool       `json:"published" gorm:"not null;index"`
	PublishedAt *time.Time `json:"publishedAt" gorm:"index"`
	ReadTime    int        `json:"readTime" gorm:"not null"`
	AuthorID    uint       `json:"authorId" gorm:"not null;index"`
	Author      *User      `json:"author,omitempty"`
	Tags        []Tag      `json:"tags" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	Comments    []Comment  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Likes       []Like     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Bookmarks   []Bookmark `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	CommentCount int64 `json:"commentCount" gorm:"->;-:migration"`
	LikeCount    int64 `json:"likeCount" gorm:"->;-:migration"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,max=200"`
	Content    string   `json:"content" validate:"required"`
	Excerpt    *string  `json:"excerpt" validate:"omitnil,max=500"`
	CoverImage *string  `json:"coverImage" validate:"omitnil,eq=|url"`
	Published  bool     `json:"published"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,dive,required,max=50"`
}

// UpdatePostRequest patches a post. A nil field is left unchanged. Tags, when
// present, replaces the whole tag set; an empty list clears it. CoverImage set to
// "" clears the stored image.
type UpdatePostRequest struct {
	Title      *string   `json:"title" validate:"omitnil,min=1,max=200"`
	Content    *string   `json:"content" validate:"omitnil,min=1"`
	Excerpt    *string   `json:"excerpt" validate:"omitnil,max=500"`
	CoverImage *string   `json:"coverImage" validate:"omitnil,eq=|url"`
	Published  *bool     `json:"published"`
	Tags       *[]string `json:"tags" validate:"omitnil,max=10,dive,required,max=50"`
}

// PostFilter narrows ListPosts.
type PostFilter struct {
	Page       int
	Limit      int
	Tag        string
	AuthorID   uint
	Search     string
	DraftsOnly bool
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PostPage is a page of posts plus its pagination block.
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}
