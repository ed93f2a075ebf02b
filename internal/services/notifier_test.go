package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domainnotification "github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
)

type recordingEmitter struct {
	msgs []realtime.Message
}

func (e *recordingEmitter) Emit(_ context.Context, msg realtime.Message) {
	e.msgs = append(e.msgs, msg)
}

func TestNotifierRoutesByRecipient(t *testing.T) {
	emit := &recordingEmitter{}
	n := NewNotifier(emit)

	broadcast, err := domainnotification.New("Release", "v2 is out", domainnotification.TypeInfo, nil, "", nil)
	require.NoError(t, err)
	n.Push(context.Background(), broadcast)

	userID := uuid.New()
	entityID := uuid.New()
	direct, err := domainnotification.New("Assigned", "You own it", domainnotification.TypeProjectCreated, &userID, "Project", &entityID)
	require.NoError(t, err)
	n.Push(context.Background(), direct)

	require.Len(t, emit.msgs, 2)
	require.Equal(t, realtime.ChannelAll, emit.msgs[0].Channel)
	require.Equal(t, realtime.EventReceiveNotification, emit.msgs[0].Event)
	require.Equal(t, realtime.UserChannel(userID), emit.msgs[1].Channel)

	payload := emit.msgs[1].Data.(map[string]any)
	require.Equal(t, "Assigned", payload["title"])
	require.Equal(t, "Project", payload["entityType"])
	require.Equal(t, entityID, payload["entityId"])
	require.IsType(t, time.Time{}, payload["timestamp"])
}

func TestHubEmitterDeliversToHub(t *testing.T) {
	hub := realtime.NewHub(logger.Nop(), nil)
	client := hub.NewClient(uuid.New(), "jdoe")
	n := NewNotifier(&HubEmitter{Hub: hub})

	note, err := domainnotification.New("Hello", "World", "", nil, "", nil)
	require.NoError(t, err)
	n.Push(context.Background(), note)

	select {
	case msg := <-client.Outbound:
		require.Equal(t, realtime.EventReceiveNotification, msg.Event)
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for push")
	}
}
