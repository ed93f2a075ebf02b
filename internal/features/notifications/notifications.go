package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/notification"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	UserID     *uuid.UUID `json:"userId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	IsRead     bool       `json:"isRead"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type UnreadCount struct {
	Count int64 `json:"count"`
}

type MarkAllResult struct {
	Updated int64 `json:"updated"`
}

func toDTO(n *types.Notification) NotificationDTO {
	return NotificationDTO{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       string(n.Type),
		UserID:     n.UserID,
		EntityType: n.EntityType,
		EntityID:   n.EntityID,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

func toDTOs(in []*types.Notification) []NotificationDTO {
	return lo.Map(in, func(n *types.Notification, _ int) NotificationDTO { return toDTO(n) })
}

type GetMyNotificationsQuery struct{}

type GetUnreadNotificationsQuery struct{}

type GetUnreadCountQuery struct{}

type GetRecentNotificationsQuery struct {
	Limit int `form:"limit" validate:"gte=0"`
}

type MarkAsReadCommand struct {
	ID uuid.UUID `json:"-"`
}

type MarkAllAsReadCommand struct{}

// SendNotificationCommand addresses UserID, or every user when it is nil.
type SendNotificationCommand struct {
	Title      string     `json:"title" validate:"notblank,max=200"`
	Message    string     `json:"message" validate:"notblank,max=1000"`
	Type       string     `json:"type"`
	UserID     *uuid.UUID `json:"userId"`
	EntityType string     `json:"entityType" validate:"max=50"`
	EntityID   *uuid.UUID `json:"entityId"`
}

type handlers struct {
	d features.Deps
}

func (h handlers) mine(ctx context.Context, _ GetMyNotificationsQuery) ([]NotificationDTO, error) {
	const op = "notifications.mine"
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return nil, err
	}
	found, err := h.d.Repos.Notifications.ListForUser(dbctx.New(ctx), rd.UserID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return toDTOs(found), nil
}

func (h handlers) unread(ctx context.Context, _ GetUnreadNotificationsQuery) ([]NotificationDTO, error) {
	const op = "notifications.unread"
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return nil, err
	}
	found, err := h.d.Repos.Notifications.ListUnreadForUser(dbctx.New(ctx), rd.UserID)
	if err != nil {
		return nil, features.Read(op, err)
	}
	return toDTOs(found), nil
}

func (h handlers) unreadCount(ctx context.Context, _ GetUnreadCountQuery) (UnreadCount, error) {
	const op = "notifications.unread_count"
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return UnreadCount{}, err
	}
	n, err := h.d.Repos.Notifications.CountUnreadForUser(dbctx.New(ctx), rd.UserID)
	if err != nil {
		return UnreadCount{}, features.Read(op, err)
	}
	return UnreadCount{Count: n}, nil
}

func (h handlers) recent(ctx context.Context, q GetRecentNotificationsQuery) ([]NotificationDTO, error) {
	found, err := h.d.Repos.Notifications.ListRecent(dbctx.New(ctx), features.Page(q.Limit, 50, 500))
	if err != nil {
		return nil, features.Read("notifications.recent", err)
	}
	return toDTOs(found), nil
}

func (h handlers) markAsRead(ctx context.Context, cmd MarkAsReadCommand) (mediator.Unit, error) {
	const op = "notifications.mark_as_read"
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return mediator.Unit{}, err
	}
	now := h.d.Now()
	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		n, err := h.d.Repos.Notifications.GetByID(dbc, cmd.ID)
		if err != nil {
			return err
		}
		// Another user's notification is reported as missing.
		if n == nil || (!n.IsBroadcast() && *n.UserID != rd.UserID) {
			return features.NotFound(op, "Notification", cmd.ID)
		}
		if n.IsRead {
			return nil
		}
		n.MarkAsRead(now)
		return h.d.Repos.Notifications.Update(dbc, n)
	})
	return mediator.Unit{}, err
}

func (h handlers) markAllAsRead(ctx context.Context, _ MarkAllAsReadCommand) (MarkAllResult, error) {
	const op = "notifications.mark_all_as_read"
	rd, err := features.CurrentUser(ctx, op)
	if err != nil {
		return MarkAllResult{}, err
	}
	var updated int64
	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		updated, err = h.d.Repos.Notifications.MarkAllReadForUser(dbc, rd.UserID, h.d.Now())
		return err
	})
	if err != nil {
		return MarkAllResult{}, err
	}
	return MarkAllResult{Updated: updated}, nil
}

func (h handlers) send(ctx context.Context, cmd SendNotificationCommand) (NotificationDTO, error) {
	const op = "notifications.send"
	typ, err := notification.ParseType(cmd.Type)
	if err != nil {
		return NotificationDTO{}, err
	}
	note, err := notification.New(cmd.Title, cmd.Message, typ, cmd.UserID, cmd.EntityType, cmd.EntityID)
	if err != nil {
		return NotificationDTO{}, err
	}
	err = h.d.UoW.Execute(ctx, op, func(dbc dbctx.Context) error {
		if !note.IsBroadcast() {
			u, err := h.d.Repos.Users.GetByID(dbc, *note.UserID)
			if err != nil {
				return err
			}
			if u == nil {
				return domainagg.NotFound(op, "User with ID "+note.UserID.String()+" not found")
			}
		}
		return h.d.Repos.Notifications.Add(dbc, note)
	})
	if err != nil {
		return NotificationDTO{}, err
	}
	if h.d.Notifier != nil {
		h.d.Notifier.Push(ctx, note)
	}
	return toDTO(note), nil
}

func Register(m *mediator.Mediator, d features.Deps) {
	h := handlers{d: d}
	mediator.Register[GetMyNotificationsQuery, []NotificationDTO](m, h.mine)
	mediator.Register[GetUnreadNotificationsQuery, []NotificationDTO](m, h.unread)
	mediator.Register[GetUnreadCountQuery, UnreadCount](m, h.unreadCount)
	mediator.Register[GetRecentNotificationsQuery, []NotificationDTO](m, h.recent)
	mediator.Register[MarkAsReadCommand, mediator.Unit](m, h.markAsRead)
	mediator.Register[MarkAllAsReadCommand, MarkAllResult](m, h.markAllAsRead)
	mediator.Register[SendNotificationCommand, NotificationDTO](m, h.send)
}
