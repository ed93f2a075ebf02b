package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/base"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

type NotificationRepo interface {
	base.Repository[types.Notification]

	ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Notification, error)
	ListUnreadForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Notification, error)
	CountUnreadForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	ListRecent(dbc dbctx.Context, limit int) ([]*types.Notification, error)
	MarkAllReadForUser(dbc dbctx.Context, userID uuid.UUID, at time.Time) (int64, error)
}

type notificationRepo struct {
	base.Repo[types.Notification]
}

func NewNotificationRepo(db *gorm.DB, baseLog *logger.Logger) NotificationRepo {
	return &notificationRepo{Repo: base.New[types.Notification](db, baseLog, "NotificationRepo", "created_at DESC")}
}

// visibleTo scopes to the user's own notifications plus broadcasts.
func visibleTo(userID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? OR user_id IS NULL", userID)
	}
}

func (r *notificationRepo) ListForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Notification, error) {
	var out []*types.Notification
	if err := r.Conn(dbc).
		Scopes(visibleTo(userID)).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) ListUnreadForUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Notification, error) {
	var out []*types.Notification
	if err := r.Conn(dbc).
		Scopes(visibleTo(userID)).
		Where("is_read = ?", false).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) CountUnreadForUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.Conn(dbc).
		Model(&types.Notification{}).
		Scopes(visibleTo(userID)).
		Where("is_read = ?", false).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *notificationRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*types.Notification
	if err := r.Conn(dbc).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *notificationRepo) MarkAllReadForUser(dbc dbctx.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := r.Conn(dbc).
		Model(&types.Notification{}).
		Scopes(visibleTo(userID)).
		Where("is_read = ?", false).
		Updates(map[string]any{"is_read": true, "read_at": at.UTC()})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
