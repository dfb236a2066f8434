package services

import (
	"context"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SocialService owns the follow, like and bookmark edges. Each edge is a unique
// join row, so a racing duplicate insert surfaces as Conflict.
type SocialService struct {
	users     repositories.UserRepository
	posts     repositories.PostRepository
	follows   repositories.FollowRepository
	likes     repositories.LikeRepository
	bookmarks repositories.BookmarkRepository
	notifier  Notifier
	logger    zerolog.Logger
}

func NewSocialService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	follows repositories.FollowRepository,
	likes repositories.LikeRepository,
	bookmarks repositories.BookmarkRepository,
	notifier Notifier,
) *SocialService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SocialService{
		users:     users,
		posts:     posts,
		follows:   follows,
		likes:     likes,
		bookmarks: bookmarks,
		notifier:  notifier,
		logger:    log.With().Str("service", "SocialService").Logger(),
	}
}

func (s *SocialService) Follow(ctx context.Context, followerID, targetID uint) error {
	if followerID == targetID {
		return errs.NewInvalidOperation("You cannot follow yourself")
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return errs.NewDatabaseError("load", "User", err)
	}

	err := s.follows.CreateFollow(ctx, &models.Follow{FollowerID: followerID, FollowingID: targetID})
	if errs.IsUniqueViolation(err) {
		return errs.NewConflict("You are already following this user")
	}
	if err != nil {
		return errs.NewDatabaseError("create", "Follow", err)
	}

	s.notifier.Notify(ctx, &models.Notification{
		Type:        models.NotificationFollow,
		ActorID:     followerID,
		RecipientID: targetID,
	})
	return nil
}

func (s *SocialService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	err := s.follows.DeleteFollow(ctx, followerID, targetID)
	if errs.IsRecordNotFound(err) {
		return errs.NewNotFound("Follow")
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "Follow", err)
	}
	return nil
}

// IsFollowing is false for anonymous viewers.
func (s *SocialService) IsFollowing(ctx context.Context, viewerID, targetID uint) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	ok, err := s.follows.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return false, errs.NewDatabaseError("load", "Follow", err)
	}
	return ok, nil
}

func (s *SocialService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	users, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Followers", err)
	}
	return nonNilUsers(users), nil
}

func (s *SocialService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	users, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Following", err)
	}
	return nonNilUsers(users), nil
}

// Like records that userID likes postID. Drafts of other authors count as missing.
func (s *SocialService) Like(ctx context.Context, userID, postID uint) error {
	post, err := s.visiblePost(ctx, postID, userID)
	if err != nil {
		return err
	}

	err = s.likes.CreateLike(ctx, &models.Like{PostID: postID, UserID: userID})
	if errs.IsUniqueViolation(err) {
		return errs.NewConflict("You have already liked this post")
	}
	if err != nil {
		return errs.NewDatabaseError("create", "Like", err)
	}

	if post.AuthorID != userID {
		s.notifier.Notify(ctx, &models.Notification{
			Type:        models.NotificationLike,
			ActorID:     userID,
			RecipientID: post.AuthorID,
			PostID:      post.ID,
			PostSlug:    post.Slug,
		})
	}
	return nil
}

func (s *SocialService) Unlike(ctx context.Context, userID, postID uint) error {
	err := s.likes.DeleteLike(ctx, postID, userID)
	if errs.IsRecordNotFound(err) {
		return errs.NewNotFound("Like")
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "Like", err)
	}
	return nil
}

// IsLiked is false for anonymous viewers.
func (s *SocialService) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	ok, err := s.likes.HasUserLikedPost(ctx, postID, userID)
	if err != nil {
		return false, errs.NewDatabaseError("load", "Like", err)
	}
	return ok, nil
}

func (s *SocialService) LikeCount(ctx context.Context, postID uint) (int64, error) {
	n, err := s.likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return 0, errs.NewDatabaseError("count", "Likes", err)
	}
	return n, nil
}

func (s *SocialService) Bookmark(ctx context.Context, userID, postID uint) error {
	if _, err := s.visiblePost(ctx, postID, userID); err != nil {
		return err
	}
	err := s.bookmarks.CreateBookmark(ctx, &models.Bookmark{UserID: userID, PostID: postID})
	if errs.IsUniqueViolation(err) {
		return errs.NewConflict("Post is already bookmarked")
	}
	if err != nil {
		return errs.NewDatabaseError("create", "Bookmark", err)
	}
	return nil
}

func (s *SocialService) Unbookmark(ctx context.Context, userID, postID uint) error {
	err := s.bookmarks.DeleteBookmark(ctx, userID, postID)
	if errs.IsRecordNotFound(err) {
		return errs.NewNotFound("Bookmark")
	}
	if err != nil {
		return errs.NewDatabaseError("delete", "Bookmark", err)
	}
	return nil
}

func (s *SocialService) IsBookmarked(ctx context.Context, userID, postID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	ok, err := s.bookmarks.IsBookmarked(ctx, userID, postID)
	if err != nil {
		return false, errs.NewDatabaseError("load", "Bookmark", err)
	}
	return ok, nil
}

// Bookmarks lists the reading list of userID, newest bookmark first.
func (s *SocialService) Bookmarks(ctx context.Context, userID uint, page, limit int) (*models.PostPage, error) {
	page, limit = NormalizePage(page, limit)
	posts, total, err := s.bookmarks.ListBookmarkedPosts(ctx, userID, offset(page, limit), limit)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Bookmarks", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &models.PostPage{Posts: posts, Pagination: newPagination(page, limit, total)}, nil
}

func (s *SocialService) visiblePost(ctx context.Context, postID, userID uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Post", err)
	}
	if !visibleTo(post, userID) {
		return nil, errs.NewNotFound("Post")
	}
	return post, nil
}

func nonNilUsers(users []models.User) []models.User {
	if users == nil {
		return []models.User{}
	}
	return users
}
