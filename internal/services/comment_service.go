package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MaxCommentLength is the longest comment body accepted, in characters.
const MaxCommentLength = 1000

// CommentService implements threaded comments on posts.
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, notifier Notifier) *CommentService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &CommentService{
		comments: comments,
		posts:    posts,
		notifier: notifier,
		logger:   log.With().Str("service", "CommentService").Logger(),
	}
}

// ListComments returns the top-level comments of postID with two levels of replies.
// A missing post, or a draft viewerID does not own, has an empty thread.
func (s *CommentService) ListComments(ctx context.Context, postID, viewerID uint) ([]models.Comment, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if errs.IsRecordNotFound(err) {
		return []models.Comment{}, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Post", err)
	}
	if !visibleTo(post, viewerID) {
		return []models.Comment{}, nil
	}

	comments, err := s.comments.GetThreadByPostID(ctx, postID)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "Comments", err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

// CreateComment adds a top-level comment, or a reply when parentID is set. The
// parent must be a comment on the same post.
func (s *CommentService) CreateComment(ctx context.Context, authorID, postID uint, content string, parentID *uint) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Post", err)
	}
	if !visibleTo(post, authorID) {
		return nil, errs.NewNotFound("Post")
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.comments.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, errs.NewDatabaseError("load", "Parent comment", err)
		}
		if parent.PostID != postID {
			return nil, errs.NewNotFound("Parent comment")
		}
	}

	comment := &models.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
		ParentID: parentID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, errs.NewDatabaseError("create", "Comment", err)
	}

	s.notifyComment(ctx, post, parent, comment)
	return comment, nil
}

// UpdateComment replaces the content of a comment owned by requesterID.
func (s *CommentService) UpdateComment(ctx context.Context, commentID, requesterID uint, content string) (*models.Comment, error) {
	if err := validateCommentContent(content); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "Comment", err)
	}
	if comment.AuthorID != requesterID {
		return nil, errs.NewForbidden("Forbidden")
	}

	comment.Content = content
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, errs.NewDatabaseError("update", "Comment", err)
	}
	return comment, nil
}

// DeleteComment removes a comment owned by requesterID and every reply beneath it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID uint) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return errs.NewDatabaseError("load", "Comment", err)
	}
	if comment.AuthorID != requesterID {
		return errs.NewForbidden("Forbidden")
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return errs.NewDatabaseError("delete", "Comment", err)
	}
	return nil
}

func (s *CommentService) notifyComment(ctx context.Context, post *models.Post, parent *models.Comment, comment *models.Comment) {
	n := &models.Notification{
		Type:        models.NotificationComment,
		ActorID:     comment.AuthorID,
		RecipientID: post.AuthorID,
		PostID:      post.ID,
		PostSlug:    post.Slug,
		CommentID:   comment.ID,
	}
	if parent != nil {
		n.Type = models.NotificationReply
		n.RecipientID = parent.AuthorID
	}
	if n.RecipientID == comment.AuthorID {
		return
	}
	s.notifier.Notify(ctx, n)
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errs.NewValidation("Comment content is required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return errs.NewValidation("Comment must be at most 1000 characters")
	}
	return nil
}
