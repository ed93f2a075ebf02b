package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
)

// Notifier pushes persisted notifications to connected clients.
type Notifier interface {
	Push(ctx context.Context, n *types.Notification)
	Presence(ctx context.Context, event realtime.Event, userID uuid.UUID, username string)
}

type notifier struct {
	emit RealtimeEmitter
	now  func() time.Time
}

func NewNotifier(emit RealtimeEmitter) Notifier {
	return &notifier{emit: emit, now: time.Now}
}

func (n *notifier) Push(ctx context.Context, note *types.Notification) {
	if n == nil || n.emit == nil || note == nil {
		return
	}
	channel := realtime.ChannelAll
	if !note.IsBroadcast() {
		channel = realtime.UserChannel(*note.UserID)
	}
	n.emit.Emit(ctx, realtime.Message{
		Channel: channel,
		Event:   realtime.EventReceiveNotification,
		Data:    NotificationPayload(note, n.now()),
	})
}

func (n *notifier) Presence(ctx context.Context, event realtime.Event, userID uuid.UUID, username string) {
	if n == nil || n.emit == nil {
		return
	}
	n.emit.Emit(ctx, realtime.Message{
		Channel: realtime.ChannelAll,
		Event:   event,
		Data: map[string]any{
			"userId":    userID,
			"username":  username,
			"timestamp": n.now().UTC(),
		},
	})
}

// NotificationPayload is the body of a ReceiveNotification push.
func NotificationPayload(note *types.Notification, at time.Time) map[string]any {
	payload := map[string]any{
		"id":        note.ID,
		"title":     note.Title,
		"message":   note.Message,
		"type":      note.Type,
		"timestamp": at.UTC(),
	}
	if note.EntityType != "" {
		payload["entityType"] = note.EntityType
	}
	if note.EntityID != nil {
		payload["entityId"] = *note.EntityID
	}
	return payload
}
