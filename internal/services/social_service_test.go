package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")

	assert.True(t, errs.IsInvalidOperation(env.social.Follow(ctx, ada.ID, ada.ID)))
	assert.True(t, errs.IsNotFound(env.social.Follow(ctx, ada.ID, 9999)))
	assert.True(t, errs.IsNotFound(env.social.Unfollow(ctx, ada.ID, bob.ID)))

	require.NoError(t, env.social.Follow(ctx, ada.ID, bob.ID))
	assert.True(t, errs.IsConflict(env.social.Follow(ctx, ada.ID, bob.ID)))

	following, err := env.social.IsFollowing(ctx, ada.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	reverse, err := env.social.IsFollowing(ctx, bob.ID, ada.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	anonymous, err := env.social.IsFollowing(ctx, 0, bob.ID)
	require.NoError(t, err)
	assert.False(t, anonymous)

	require.NoError(t, env.social.Unfollow(ctx, ada.ID, bob.ID))
	following, err = env.social.IsFollowing(ctx, ada.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowersAndFollowing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")
	cy := testutil.CreateUser(t, env.db, "Cy")

	require.NoError(t, env.social.Follow(ctx, bob.ID, ada.ID))
	require.NoError(t, env.social.Follow(ctx, cy.ID, ada.ID))

	followers, err := env.social.Followers(ctx, ada.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)
	for _, f := range followers {
		assert.Empty(t, f.Email)
	}

	following, err := env.social.Following(ctx, ada.ID)
	require.NoError(t, err)
	assert.NotNil(t, following)
	assert.Empty(t, following)

	_, err = env.social.Followers(ctx, 9999)
	assert.True(t, errs.IsNotFound(err))
}

func TestLikeRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "Likeable", true)

	before, err := env.social.LikeCount(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, env.social.Like(ctx, reader.ID, post.ID))
	liked, err := env.social.IsLiked(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := env.social.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, count)

	assert.True(t, errs.IsConflict(env.social.Like(ctx, reader.ID, post.ID)))

	require.NoError(t, env.social.Unlike(ctx, reader.ID, post.ID))
	count, err = env.social.LikeCount(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, before, count)

	liked, err = env.social.IsLiked(ctx, reader.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	assert.True(t, errs.IsNotFound(env.social.Unlike(ctx, reader.ID, post.ID)))

	anonymous, err := env.social.IsLiked(ctx, 0, post.ID)
	require.NoError(t, err)
	assert.False(t, anonymous)
}

func TestLikeRequiresAVisiblePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	draft := testutil.CreatePost(t, env.db, author.ID, "Draft", false)

	assert.True(t, errs.IsNotFound(env.social.Like(ctx, reader.ID, 9999)))
	assert.True(t, errs.IsNotFound(env.social.Like(ctx, reader.ID, draft.ID)))
	assert.True(t, errs.IsNotFound(env.social.Bookmark(ctx, reader.ID, draft.ID)))

	// Authors may like their own drafts; nobody is notified.
	require.NoError(t, env.social.Like(ctx, author.ID, draft.ID))
	assert.Empty(t, env.inbox.All())
}

func TestBookmarks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	older := testutil.CreatePost(t, env.db, author.ID, "Older", true)
	newer := testutil.CreatePost(t, env.db, author.ID, "Newer", true)

	require.NoError(t, env.social.Bookmark(ctx, reader.ID, newer.ID))
	require.NoError(t, env.social.Bookmark(ctx, reader.ID, older.ID))
	assert.True(t, errs.IsConflict(env.social.Bookmark(ctx, reader.ID, older.ID)))

	marked, err := env.social.IsBookmarked(ctx, reader.ID, older.ID)
	require.NoError(t, err)
	assert.True(t, marked)

	page, err := env.social.Bookmarks(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, older.ID, page.Posts[0].ID, "most recently bookmarked first")
	assert.Equal(t, int64(2), page.Pagination.Total)

	// A post that goes back to draft drops off the reader's list.
	_, err = env.posts.UpdatePost(ctx, older.ID, author.ID, models.UpdatePostRequest{Published: boolPtr(false)})
	require.NoError(t, err)
	page, err = env.social.Bookmarks(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, newer.ID, page.Posts[0].ID)

	require.NoError(t, env.social.Unbookmark(ctx, reader.ID, newer.ID))
	assert.True(t, errs.IsNotFound(env.social.Unbookmark(ctx, reader.ID, newer.ID)))

	empty, err := env.social.Bookmarks(ctx, author.ID, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Posts)
	assert.Empty(t, empty.Posts)
}

func TestRacingEdgesKeepOneRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, ada.ID, "Popular", true)

	const workers = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []error
	)
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, err)
	}
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			record(env.social.Like(ctx, bob.ID, post.ID))
		}()
		go func() {
			defer wg.Done()
			record(env.social.Follow(ctx, bob.ID, ada.ID))
		}()
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errs.IsConflict(err):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, ok)
	assert.Equal(t, 2*workers-2, conflicts)

	var likes, follows int64
	require.NoError(t, env.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, bob.ID).Count(&likes).Error)
	require.NoError(t, env.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", bob.ID, ada.ID).Count(&follows).Error)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(1), follows)
}
