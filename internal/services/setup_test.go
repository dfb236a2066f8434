package services_test

import (
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/internal/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	inbox *testutil.NotificationStore

	auth          *services.AuthService
	posts         *services.PostService
	social        *services.SocialService
	feed          *services.FeedService
	comments      *services.CommentService
	users         *services.UserService
	notifications *services.NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	inbox := testutil.NewNotificationStore()

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	notifications := services.NewNotificationService(inbox, userRepo)
	return &testEnv{
		db:    db,
		inbox: inbox,
		auth:  services.NewAuthService(userRepo, services.NewTokenManager("test-secret", time.Hour), nil),
		posts: services.NewPostService(postRepo),
		social: services.NewSocialService(userRepo, postRepo, followRepo,
			repositories.NewPostgresLikeRepository(db),
			repositories.NewPostgresBookmarkRepository(db),
			notifications),
		feed:          services.NewFeedService(postRepo, userRepo, repositories.NewPostgresTagRepository(db), followRepo),
		comments:      services.NewCommentService(repositories.NewPostgresCommentRepository(db), postRepo, notifications),
		users:         services.NewUserService(userRepo, postRepo, followRepo),
		notifications: notifications,
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
