package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/slug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PostService implements the content rules: slugs, read time, publishing and
// draft visibility.
type PostService struct {
	posts  repositories.PostRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewPostService(posts repositories.PostRepository) *PostService {
	return &PostService{
		posts:  posts,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.With().Str("service", "PostService").Logger(),
	}
}

// CreatePost stores a new post for authorID, linking (and creating) its tags.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest) (*models.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, errs.NewValidation("Title and content are required")
	}

	now := s.now()
	post := &models.Post{
		Slug:       slug.ForPost(title, now),
		Title:      title,
		Content:    req.Content,
		Excerpt:    req.Excerpt,
		CoverImage: emptyToNil(req.CoverImage),
		Published:  req.Published,
		ReadTime:   slug.ReadTime(req.Content),
		AuthorID:   authorID,
	}
	if req.Published {
		post.PublishedAt = &now
	}

	if err := s.posts.CreatePost(ctx, post, req.Tags); err != nil {
		return nil, errs.NewDatabaseError("create", "Post", err)
	}
	s.logger.Info().Uint("postId", post.ID).Uint("authorId", authorID).Str("slug", post.Slug).Msg("post created")
	return post, nil
}

// UpdatePost applies a partial update. Existence is checked before ownership.
func (s *PostService) UpdatePost(ctx context.Context, postID, requesterID uint, req models.UpdatePostRequest) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Post", err)
	}
	if post.AuthorID != requesterID {
		return nil, errs.NewForbidden("Forbidden")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, errs.NewValidation("Title cannot be empty")
		}
		post.Title = title
	}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, errs.NewValidation("Content cannot be empty")
		}
		post.Content = *req.Content
		post.ReadTime = slug.ReadTime(post.Content)
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.CoverImage != nil {
		post.CoverImage = emptyToNil(req.CoverImage)
	}
	if req.Published != nil {
		if *req.Published && !post.Published {
			now := s.now()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := s.posts.UpdatePost(ctx, post, req.Tags); err != nil {
		return nil, errs.NewDatabaseError("update", "Post", err)
	}
	return post, nil
}

// DeletePost removes a post owned by requesterID together with its comments and likes.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return errs.NewDatabaseError("load", "Post", err)
	}
	if post.AuthorID != requesterID {
		return errs.NewForbidden("Forbidden")
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return errs.NewDatabaseError("delete", "Post", err)
	}
	s.logger.Info().Uint("postId", postID).Msg("post deleted")
	return nil
}

// GetPost looks a post up by id or slug. Drafts are reported as missing to
// everyone but their author. requesterID 0 means anonymous.
func (s *PostService) GetPost(ctx context.Context, idOrSlug string, requesterID uint) (*models.Post, error) {
	post, err := s.posts.GetPostByIDOrSlug(ctx, idOrSlug)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Post", err)
	}
	if !visibleTo(post, requesterID) {
		return nil, errs.NewNotFound("Post")
	}
	return post, nil
}

// ListPosts pages through posts. DraftsOnly lists every post of the requester,
// published or not, and ignores AuthorID; it requires a requester.
func (s *PostService) ListPosts(ctx context.Context, filter models.PostFilter, requesterID uint) (*models.PostPage, error) {
	page, limit := NormalizePage(filter.Page, filter.Limit)
	q := repositories.PostQuery{
		TagSlug: strings.TrimSpace(filter.Tag),
		Search:  filter.Search,
		OrderBy: repositories.OrderNewestCreated,
		Offset:  offset(page, limit),
		Limit:   limit,
	}
	if filter.DraftsOnly {
		if requesterID == 0 {
			return nil, errs.Unauthorized
		}
		q.AuthorID = requesterID
	} else {
		published := true
		q.Published = &published
		q.AuthorID = filter.AuthorID
	}
	return s.list(ctx, q, page, limit)
}

// ListUserPosts pages through an author's published posts, newest published first.
func (s *PostService) ListUserPosts(ctx context.Context, authorID uint, page, limit int) (*models.PostPage, error) {
	page, limit = NormalizePage(page, limit)
	published := true
	return s.list(ctx, repositories.PostQuery{
		Published: &published,
		AuthorID:  authorID,
		OrderBy:   repositories.OrderNewestPublished,
		Offset:    offset(page, limit),
		Limit:     limit,
	}, page, limit)
}

func (s *PostService) list(ctx context.Context, q repositories.PostQuery, page, limit int) (*models.PostPage, error) {
	posts, total, err := s.posts.ListPosts(ctx, q)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Posts", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.PostPage{Posts: posts, Pagination: newPagination(page, limit, total)}, nil
}

func visibleTo(post *models.Post, requesterID uint) bool {
	return post.Published || (requesterID != 0 && post.AuthorID == requesterID)
}
