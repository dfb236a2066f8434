package services

import (
	"context"
	"strings"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// UserService serves public profiles and profile edits.
type UserService struct {
	users   repositories.UserRepository
	posts   repositories.PostRepository
	follows repositories.FollowRepository
}

func NewUserService(users repositories.UserRepository, posts repositories.PostRepository, follows repositories.FollowRepository) *UserService {
	return &UserService{users: users, posts: posts, follows: follows}
}

// GetProfile returns userID with activity counts. viewerID 0 is anonymous.
func (s *UserService) GetProfile(ctx context.Context, userID, viewerID uint) (*models.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	profile := &models.UserProfile{User: *user}
	profile.Email = ""

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile.Counts.Posts, err = s.posts.CountPublishedByAuthor(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		profile.Counts.Followers, err = s.follows.GetFollowersCount(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		profile.Counts.Following, err = s.follows.GetFollowingCount(gctx, userID)
		return err
	})
	if viewerID != 0 && viewerID != userID {
		g.Go(func() (err error) {
			profile.IsFollowing, err = s.follows.IsFollowing(gctx, viewerID, userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errs.NewDatabaseError("load", "Profile", err)
	}
	return profile, nil
}

// UpdateProfile patches name, bio and image. An empty image clears it.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errs.NewDatabaseError("load", "User", err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, errs.NewValidation("Name must be at least 2 characters")
		}
		user.Name = name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Image != nil {
		user.Image = emptyToNil(req.Image)
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, errs.NewDatabaseError("update", "User", err)
	}
	return user, nil
}
