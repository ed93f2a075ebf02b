package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	domainnotification "github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type recordingHandler struct {
	name  string
	err   error
	panic bool
	seen  []string
}

func (h *recordingHandler) Name() string { return h.name }

func (h *recordingHandler) Handle(_ context.Context, ev domainagg.Event) error {
	h.seen = append(h.seen, ev.EventName())
	if h.panic {
		panic("boom")
	}
	return h.err
}

func projectCreated() portfolio.ProjectCreated {
	return portfolio.ProjectCreated{EventMeta: domainagg.NewEventMeta(), ProjectID: uuid.New(), Code: "PRJ-1", Name: "Billing"}
}

func TestDispatcherRunsEveryHandlerDespiteFailures(t *testing.T) {
	failing := &recordingHandler{name: "failing", err: errors.New("nope")}
	panicking := &recordingHandler{name: "panicking", panic: true}
	ok := &recordingHandler{name: "ok"}
	d := NewDispatcher(logger.Nop(), observability.NewMetrics(), failing, panicking, ok)

	d.Dispatch(context.Background(), []domainagg.Event{projectCreated(), nil, wiki.PagePublished{EventMeta: domainagg.NewEventMeta(), PageID: uuid.New(), Title: "Intro"}})

	want := []string{portfolio.EventProjectCreated, wiki.EventPagePublished}
	require.Equal(t, want, failing.seen)
	require.Equal(t, want, panicking.seen)
	require.Equal(t, want, ok.seen)
}

func TestNotificationForMapsStatusTransitions(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name  string
		event domainagg.Event
		want  domainnotification.Type
	}{
		{"created", projectCreated(), domainnotification.TypeProjectCreated},
		{"completed", portfolio.ProjectStatusChanged{ProjectID: id, OldStatus: portfolio.ProjectStatusInProgress, NewStatus: portfolio.ProjectStatusCompleted}, domainnotification.TypeProjectCompleted},
		{"on hold", portfolio.ProjectStatusChanged{ProjectID: id, OldStatus: portfolio.ProjectStatusInProgress, NewStatus: portfolio.ProjectStatusOnHold}, domainnotification.TypeProjectUpdated},
		{"rule activated", portfolio.BusinessRuleStatusChanged{BusinessRuleID: id, NewStatus: portfolio.BusinessRuleStatusActive}, domainnotification.TypeBusinessRuleActivated},
		{"rule deactivated", portfolio.BusinessRuleStatusChanged{BusinessRuleID: id, NewStatus: portfolio.BusinessRuleStatusInactive}, domainnotification.TypeBusinessRuleDeactivated},
		{"wiki v2", wiki.PageVersionCreated{PageID: id, VersionNumber: 2}, domainnotification.TypeWikiPageUpdated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := NotificationFor(tc.event)
			require.True(t, ok)
			require.Equal(t, tc.want, d.Type)
			require.NotEmpty(t, d.Title)
		})
	}

	_, ok := NotificationFor(wiki.PageVersionCreated{PageID: id, VersionNumber: 1})
	require.False(t, ok)
	_, ok = NotificationFor(portfolio.ApplicationVersionUpgraded{ApplicationID: id})
	require.False(t, ok)
}

func TestNotificationHandlerPersistsThenPushes(t *testing.T) {
	db := testutil.DB(t)
	repo := repos.NewNotificationRepo(db, testutil.Logger(t))
	hub := realtime.NewHub(testutil.Logger(t), nil)
	client := hub.NewClient(uuid.New(), "watcher")
	h := NewNotificationHandler(repo, services.NewNotifier(&services.HubEmitter{Hub: hub}))

	ev := projectCreated()
	require.NoError(t, h.Handle(context.Background(), ev))

	recent, err := repo.ListRecent(dbctx.New(context.Background()), 10)
	require.NoError(t, err)
	var found *domainnotification.Notification
	for _, n := range recent {
		if n.EntityID != nil && *n.EntityID == ev.ProjectID {
			found = n
		}
	}
	require.NotNil(t, found)
	require.True(t, found.IsBroadcast())
	require.Equal(t, domainnotification.TypeProjectCreated, found.Type)

	msg := <-client.Outbound
	require.Equal(t, realtime.EventReceiveNotification, msg.Event)
	require.Equal(t, realtime.ChannelAll, msg.Channel)
}

type fakePublisher struct {
	subjects []string
	payloads [][]byte
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestNATSPublisherEnvelope(t *testing.T) {
	fake := &fakePublisher{}
	p := newNATSPublisher(logger.Nop(), fake, "acme.events.")
	ev := projectCreated()

	require.NoError(t, p.Handle(context.Background(), ev))
	require.Equal(t, []string{"acme.events.ProjectCreated"}, fake.subjects)

	var env struct {
		Name        string         `json:"name"`
		AggregateID string         `json:"aggregateId"`
		Payload     map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(fake.payloads[0], &env))
	require.Equal(t, portfolio.EventProjectCreated, env.Name)
	require.Equal(t, ev.ProjectID.String(), env.AggregateID)
	require.Equal(t, "PRJ-1", env.Payload["code"])

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, p.Handle(ctx, ev))

	_, err := NewNATSPublisher(logger.Nop(), "", "")
	require.Error(t, err)
}
