package notifications_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/features/featuretest"
	"github.com/yungbote/cleanarch-backend/internal/features/notifications"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
)

func setup(t *testing.T) *featuretest.Harness {
	t.Helper()
	h := featuretest.New(t)
	notifications.Register(h.Mediator, h.Deps)
	return h
}

func send(t *testing.T, h *featuretest.Harness, userID *uuid.UUID, title string) notifications.NotificationDTO {
	t.Helper()
	out, err := mediator.Send[notifications.SendNotificationCommand, notifications.NotificationDTO](context.Background(), h.Mediator, notifications.SendNotificationCommand{
		Title:   title,
		Message: title + " body",
		UserID:  userID,
	})
	require.NoError(t, err)
	return out
}

func TestSendPersistsAndPushes(t *testing.T) {
	h := setup(t)
	u := testutil.SeedUser(t, context.Background(), h.DB, featuretest.Unique("alice"))

	direct := send(t, h, &u.ID, "Direct")
	assert.Equal(t, "Info", direct.Type)
	require.NotNil(t, direct.UserID)
	send(t, h, nil, "Broadcast")

	require.Equal(t, 2, h.Notifier.Count())
	assert.Equal(t, "Direct", h.Notifier.Pushed[0].Title)
	assert.True(t, h.Notifier.Pushed[1].IsBroadcast())

	missing := uuid.New()
	_, err := mediator.Send[notifications.SendNotificationCommand, notifications.NotificationDTO](context.Background(), h.Mediator, notifications.SendNotificationCommand{
		Title: "Lost", Message: "nobody", UserID: &missing,
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	_, err = mediator.Send[notifications.SendNotificationCommand, notifications.NotificationDTO](context.Background(), h.Mediator, notifications.SendNotificationCommand{
		Title: "Typed", Message: "bad type", Type: "Shouting",
	})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeValidation))
	assert.Equal(t, 2, h.Notifier.Count())
}

func TestUserSeesOwnAndBroadcast(t *testing.T) {
	h := setup(t)
	bg := context.Background()
	alice := testutil.SeedUser(t, bg, h.DB, featuretest.Unique("alice"))
	bob := testutil.SeedUser(t, bg, h.DB, featuretest.Unique("bob"))

	forAlice := send(t, h, &alice.ID, "For alice")
	forBob := send(t, h, &bob.ID, "For bob")
	send(t, h, nil, "Everyone")

	ctx := featuretest.AsUser(bg, alice.ID, alice.Username)
	mine, err := mediator.Send[notifications.GetMyNotificationsQuery, []notifications.NotificationDTO](ctx, h.Mediator, notifications.GetMyNotificationsQuery{})
	require.NoError(t, err)
	titles := []string{}
	for _, n := range mine {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "For alice")
	assert.Contains(t, titles, "Everyone")
	assert.NotContains(t, titles, "For bob")

	_, err = mediator.Send[notifications.MarkAsReadCommand, mediator.Unit](ctx, h.Mediator, notifications.MarkAsReadCommand{ID: forBob.ID})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeNotFound))

	_, err = mediator.Send[notifications.MarkAsReadCommand, mediator.Unit](ctx, h.Mediator, notifications.MarkAsReadCommand{ID: forAlice.ID})
	require.NoError(t, err)

	unread, err := mediator.Send[notifications.GetUnreadNotificationsQuery, []notifications.NotificationDTO](ctx, h.Mediator, notifications.GetUnreadNotificationsQuery{})
	require.NoError(t, err)
	for _, n := range unread {
		assert.NotEqual(t, forAlice.ID, n.ID)
	}

	result, err := mediator.Send[notifications.MarkAllAsReadCommand, notifications.MarkAllResult](ctx, h.Mediator, notifications.MarkAllAsReadCommand{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Updated, int64(1))

	count, err := mediator.Send[notifications.GetUnreadCountQuery, notifications.UnreadCount](ctx, h.Mediator, notifications.GetUnreadCountQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count.Count)
}

func TestAnonymousCallerIsRejected(t *testing.T) {
	h := setup(t)
	_, err := mediator.Send[notifications.GetMyNotificationsQuery, []notifications.NotificationDTO](context.Background(), h.Mediator, notifications.GetMyNotificationsQuery{})
	assert.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized))
}

func TestRecentHonoursLimit(t *testing.T) {
	h := setup(t)
	send(t, h, nil, "First")
	send(t, h, nil, "Second")

	recent, err := mediator.Send[notifications.GetRecentNotificationsQuery, []notifications.NotificationDTO](context.Background(), h.Mediator, notifications.GetRecentNotificationsQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, recent, 1)
}
