package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentThread(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "Discuss", true)

	root, err := env.comments.CreateComment(ctx, reader.ID, post.ID, "root", nil)
	require.NoError(t, err)
	require.NotNil(t, root.Author)
	assert.Equal(t, "Bob", root.Author.Name)

	reply, err := env.comments.CreateComment(ctx, author.ID, post.ID, "reply", &root.ID)
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, "nested", &reply.ID)
	require.NoError(t, err)
	later, err := env.comments.CreateComment(ctx, author.ID, post.ID, "second root", nil)
	require.NoError(t, err)

	thread, err := env.comments.ListComments(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, later.ID, thread[0].ID, "newest top-level comment first")

	first := thread[1]
	assert.Equal(t, root.ID, first.ID)
	require.Len(t, first.Replies, 1)
	assert.Equal(t, "reply", first.Replies[0].Content)
	require.NotNil(t, first.Replies[0].Author)
	assert.Equal(t, "Ada", first.Replies[0].Author.Name)
	require.Len(t, first.Replies[0].Replies, 1)
	assert.Equal(t, "nested", first.Replies[0].Replies[0].Content)

	got, err := env.posts.GetPost(ctx, post.Slug, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.CommentCount)
}

func TestCreateCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "One", true)
	otherPost := testutil.CreatePost(t, env.db, author.ID, "Two", true)
	draft := testutil.CreatePost(t, env.db, author.ID, "Draft", false)

	_, err := env.comments.CreateComment(ctx, reader.ID, post.ID, "   ", nil)
	assert.True(t, errs.IsBadRequest(err))

	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, strings.Repeat("x", 1001), nil)
	assert.True(t, errs.IsBadRequest(err))

	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, strings.Repeat("é", 1000), nil)
	assert.NoError(t, err)

	_, err = env.comments.CreateComment(ctx, reader.ID, 9999, "hi", nil)
	assert.True(t, errs.IsNotFound(err))

	_, err = env.comments.CreateComment(ctx, reader.ID, draft.ID, "hi", nil)
	assert.True(t, errs.IsNotFound(err))

	missing := uint(9999)
	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, "hi", &missing)
	assert.True(t, errs.IsNotFound(err))

	elsewhere, err := env.comments.CreateComment(ctx, reader.ID, otherPost.ID, "elsewhere", nil)
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, "hi", &elsewhere.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestUpdateAndDeleteComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "Discuss", true)

	comment, err := env.comments.CreateComment(ctx, reader.ID, post.ID, "draft thought", nil)
	require.NoError(t, err)

	_, err = env.comments.UpdateComment(ctx, comment.ID, author.ID, "hijack")
	assert.True(t, errs.IsForbidden(err))
	_, err = env.comments.UpdateComment(ctx, 9999, reader.ID, "x")
	assert.True(t, errs.IsNotFound(err))

	updated, err := env.comments.UpdateComment(ctx, comment.ID, reader.ID, "final thought")
	require.NoError(t, err)
	assert.Equal(t, "final thought", updated.Content)

	assert.True(t, errs.IsForbidden(env.comments.DeleteComment(ctx, comment.ID, author.ID)))
	assert.True(t, errs.IsNotFound(env.comments.DeleteComment(ctx, 9999, reader.ID)))
}

func TestDeleteCommentCascadesToReplies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "Discuss", true)

	root, err := env.comments.CreateComment(ctx, reader.ID, post.ID, "root", nil)
	require.NoError(t, err)
	for _, body := range []string{"one", "two"} {
		_, err := env.comments.CreateComment(ctx, author.ID, post.ID, body, &root.ID)
		require.NoError(t, err)
	}

	require.NoError(t, env.comments.DeleteComment(ctx, root.ID, reader.ID))

	var left int64
	require.NoError(t, env.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&left).Error)
	assert.Zero(t, left)

	thread, err := env.comments.ListComments(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.NotNil(t, thread)
	assert.Empty(t, thread)
}

func TestCommentNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, env.db, "Ada")
	reader := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, author.ID, "Discuss", true)

	root, err := env.comments.CreateComment(ctx, reader.ID, post.ID, "root", nil)
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, author.ID, post.ID, "thanks", &root.ID)
	require.NoError(t, err)
	// Replying to yourself notifies nobody.
	_, err = env.comments.CreateComment(ctx, reader.ID, post.ID, "me again", &root.ID)
	require.NoError(t, err)

	got := env.inbox.All()
	require.Len(t, got, 2)

	assert.Equal(t, models.NotificationComment, got[0].Type)
	assert.Equal(t, author.ID, got[0].RecipientID)
	assert.Equal(t, "Bob commented on your post", got[0].Message)
	assert.Equal(t, post.Slug, got[0].PostSlug)

	assert.Equal(t, models.NotificationReply, got[1].Type)
	assert.Equal(t, reader.ID, got[1].RecipientID)
	assert.Equal(t, "Ada replied to your comment", got[1].Message)
}
