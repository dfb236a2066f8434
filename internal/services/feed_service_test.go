package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/anonto42/inkwell/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := testutil.CreateUser(t, env.db, "Reader")
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")

	empty, err := env.feed.PersonalFeed(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Posts)
	assert.Empty(t, empty.Posts)
	assert.Zero(t, empty.Pagination.Total)
	assert.Zero(t, empty.Pagination.TotalPages)

	first := testutil.CreatePost(t, env.db, ada.ID, "Ada first", true)
	second := testutil.CreatePost(t, env.db, ada.ID, "Ada second", true)
	testutil.CreatePost(t, env.db, ada.ID, "Ada draft", false)
	testutil.CreatePost(t, env.db, bob.ID, "Bob post", true)

	require.NoError(t, env.social.Follow(ctx, reader.ID, ada.ID))

	feed, err := env.feed.PersonalFeed(ctx, reader.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, second.ID, feed.Posts[0].ID)
	assert.Equal(t, first.ID, feed.Posts[1].ID)
	assert.Equal(t, int64(2), feed.Pagination.Total)
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	gopher := testutil.CreateUser(t, env.db, "Gopher Jones")
	other := testutil.CreateUser(t, env.db, "Someone")

	_, err := env.posts.CreatePost(ctx, gopher.ID, models.CreatePostRequest{
		Title: "Generics in Go", Content: "type parameters", Published: true, Tags: []string{"golang"},
	})
	require.NoError(t, err)
	_, err = env.posts.CreatePost(ctx, other.ID, models.CreatePostRequest{
		Title: "Go draft", Content: "unfinished", Tags: []string{"gossip"},
	})
	require.NoError(t, err)
	require.NoError(t, env.social.Follow(ctx, other.ID, gopher.ID))

	short, err := env.feed.Search(ctx, " g ", services.SearchAll)
	require.NoError(t, err)
	assert.Empty(t, short.Posts)
	assert.Empty(t, short.Users)
	assert.Empty(t, short.Tags)
	assert.NotNil(t, short.Posts)

	all, err := env.feed.Search(ctx, "go", "")
	require.NoError(t, err)
	require.Len(t, all.Posts, 1, "drafts are never searchable")
	assert.Equal(t, "Generics in Go", all.Posts[0].Title)
	require.Len(t, all.Users, 1)
	assert.Equal(t, gopher.ID, all.Users[0].ID)
	assert.Equal(t, models.UserCounts{Posts: 1, Followers: 1, Following: 0}, all.Users[0].Counts)
	assert.Empty(t, all.Users[0].Email)
	require.Len(t, all.Tags, 2)

	onlyTags, err := env.feed.Search(ctx, "go", services.SearchTags)
	require.NoError(t, err)
	assert.Empty(t, onlyTags.Posts)
	assert.Empty(t, onlyTags.Users)
	assert.Len(t, onlyTags.Tags, 2)

	literal, err := env.feed.Search(ctx, "%_", services.SearchPosts)
	require.NoError(t, err)
	assert.Empty(t, literal.Posts)
}

func TestTrendingTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")

	for _, tags := range [][]string{{"go", "web"}, {"go"}, {"go", "rust"}, {"rust"}} {
		_, err := env.posts.CreatePost(ctx, ada.ID, models.CreatePostRequest{Title: "t", Content: "c", Published: true, Tags: tags})
		require.NoError(t, err)
	}

	tags, err := env.feed.TrendingTags(ctx, 0)
	require.NoError(t, err)
	require.Len(t, tags, 3)
	assert.Equal(t, "go", tags[0].Slug)
	assert.Equal(t, int64(3), tags[0].PostCount)
	assert.Equal(t, "rust", tags[1].Slug)
	assert.Equal(t, int64(2), tags[1].PostCount)
	assert.Equal(t, "web", tags[2].Slug)

	top, err := env.feed.TrendingTags(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "go", top[0].Slug)
}
