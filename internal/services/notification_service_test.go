package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/inkwell/backend/internal/errs"
	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialEventsReachTheInbox(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")
	post := testutil.CreatePost(t, env.db, ada.ID, "Hello", true)

	require.NoError(t, env.social.Follow(ctx, bob.ID, ada.ID))
	require.NoError(t, env.social.Like(ctx, bob.ID, post.ID))
	require.NoError(t, env.social.Like(ctx, ada.ID, post.ID))

	page, err := env.notifications.List(ctx, ada.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Notifications, 2)
	assert.Equal(t, int64(2), page.UnreadCount)
	assert.Equal(t, int64(2), page.Pagination.Total)

	messages := []string{page.Notifications[0].Message, page.Notifications[1].Message}
	assert.ElementsMatch(t, []string{"Bob started following you", "Bob liked your post"}, messages)

	empty, err := env.notifications.List(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, empty.Notifications)
	assert.Zero(t, empty.UnreadCount)
}

func TestMarkNotificationsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")
	cy := testutil.CreateUser(t, env.db, "Cy")

	require.NoError(t, env.social.Follow(ctx, bob.ID, ada.ID))
	require.NoError(t, env.social.Follow(ctx, cy.ID, ada.ID))

	stored := env.inbox.All()
	require.Len(t, stored, 2)
	id := stored[0].ID.Hex()

	assert.True(t, errs.IsNotFound(env.notifications.MarkRead(ctx, bob.ID, id)), "someone else's notification")
	assert.True(t, errs.IsNotFound(env.notifications.MarkRead(ctx, ada.ID, "not-an-object-id")))

	require.NoError(t, env.notifications.MarkRead(ctx, ada.ID, id))
	page, err := env.notifications.List(ctx, ada.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.UnreadCount)

	require.NoError(t, env.notifications.MarkAllRead(ctx, ada.ID))
	page, err = env.notifications.List(ctx, ada.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, page.UnreadCount)
}

func TestNotifyFailureDoesNotFailTheAction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, env.db, "Ada")
	bob := testutil.CreateUser(t, env.db, "Bob")
	env.inbox.Err = errors.New("mongo unavailable")

	require.NoError(t, env.social.Follow(ctx, bob.ID, ada.ID))

	env.inbox.Err = nil
	assert.Empty(t, env.inbox.All())

	env.notifications.Notify(ctx, &models.Notification{Type: models.NotificationFollow, ActorID: ada.ID, RecipientID: ada.ID})
	assert.Empty(t, env.inbox.All(), "self notifications are dropped")
}
