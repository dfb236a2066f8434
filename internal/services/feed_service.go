package services

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// Search kinds.
const (
	SearchAll   = "all"
	SearchPosts = "posts"
	SearchUsers = "users"
	SearchTags  = "tags"
)

// SearchResult always carries all three lists, empty when not searched.
type SearchResult struct {
	Posts []models.Post `json:"posts"`
	Users []models.UserSearchResult `json:"users"`
	Tags  []models.Tag  `json:"tags"`
}

// FeedService serves the personal feed, free-text search and tag discovery.
type FeedService struct {
	posts   repositories.PostRepository
	users   repositories.UserRepository
	tags    repositories.TagRepository
	follows repositories.FollowRepository
}

func NewFeedService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	tags repositories.TagRepository,
	follows repositories.FollowRepository,
) *FeedService {
	return &FeedService{posts: posts, users: users, tags: tags, follows: follows}
}

// PersonalFeed pages through published posts by the authors userID follows,
// newest published first. Following nobody yields an empty page.
func (s *FeedService) PersonalFeed(ctx context.Context, userID uint, page, limit int) (*models.PostPage, error) {
	page, limit = NormalizePage(page, limit)

	ids, err := s.follows.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Following", err)
	}
	if len(ids) == 0 {
		return &models.PostPage{Posts: []models.Post{}, Pagination: newPagination(page, limit, 0)}, nil
	}

	published := true
	posts, total, err := s.posts.ListPosts(ctx, repositories.PostQuery{
		Published: &published,
		AuthorIDs: ids,
		OrderBy:   repositories.OrderNewestPublished,
		Offset:    offset(page, limit),
		Limit:     limit,
	})
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Feed", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.PostPage{Posts: posts, Pagination: newPagination(page, limit, total)}, nil
}

// Search runs the requested categories concurrently. Queries shorter than
// SearchMinQueryLength after trimming return empty lists.
func (s *FeedService) Search(ctx context.Context, query, kind string) (*SearchResult, error) {
	result := &SearchResult{Posts: []models.Post{}, Users: []models.UserSearchResult{}, Tags: []models.Tag{}}
	query = strings.TrimSpace(query)
	if len([]rune(query)) < SearchMinQueryLength {
		return result, nil
	}
	if kind == "" {
		kind = SearchAll
	}

	g, gctx := errgroup.WithContext(ctx)
	if kind == SearchAll || kind == SearchPosts {
		g.Go(func() error {
			posts, err := s.posts.SearchPosts(gctx, query, SearchResultLimit)
			if err != nil {
				return errs.NewDatabaseError("search", "Posts", err)
			}
			if posts != nil {
				result.Posts = posts
			}
			return nil
		})
	}
	if kind == SearchAll || kind == SearchUsers {
		g.Go(func() error {
			users, err := s.users.SearchUsers(gctx, query, SearchResultLimit)
			if err != nil {
				return errs.NewDatabaseError("search", "Users", err)
			}
			if users != nil {
				result.Users = users
			}
			return nil
		})
	}
	if kind == SearchAll || kind == SearchTags {
		g.Go(func() error {
			tags, err := s.tags.SearchTags(gctx, query, SearchResultLimit)
			if err != nil {
				return errs.NewDatabaseError("search", "Tags", err)
			}
			if tags != nil {
				result.Tags = tags
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// TrendingTags lists tags by descending linked-post count. limit <= 0 lists all.
func (s *FeedService) TrendingTags(ctx context.Context, limit int) ([]models.Tag, error) {
	tags, err := s.tags.TrendingTags(ctx, limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Tags", err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	return tags, nil
}
