// Package base holds the generic repository every aggregate repository embeds.
package base

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

// Repository is the contract shared by all aggregate repositories.
type Repository[T any] interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*T, error)
	List(dbc dbctx.Context) ([]*T, error)
	Add(dbc dbctx.Context, entity *T) error
	Update(dbc dbctx.Context, entity *T) error
	Delete(dbc dbctx.Context, entity *T) error
	Count(dbc dbctx.Context) (int64, error)
}

// Repo implements Repository over one GORM model. Writes stamp audit fields
// with the request principal and register the entity with the surrounding
// unit of work so its domain events are published after commit.
type Repo[T any] struct {
	DB        *gorm.DB
	Log       *logger.Logger
	ListOrder string
	Now       func() time.Time
}

func New[T any](db *gorm.DB, baseLog *logger.Logger, name, listOrder string) Repo[T] {
	return Repo[T]{
		DB:        db,
		Log:       baseLog.With("repo", name),
		ListOrder: listOrder,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Conn returns the transaction carried by dbc, or the root handle, bound to dbc's context.
func (r *Repo[T]) Conn(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.DB
	}
	return t.WithContext(dbc.Context())
}

// First returns the first row matching the scoped query, or nil when none.
func (r *Repo[T]) First(q *gorm.DB) (*T, error) {
	var out T
	res := q.Limit(1).Find(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &out, nil
}

func (r *Repo[T]) GetByID(dbc dbctx.Context, id uuid.UUID) (*T, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return r.First(r.Conn(dbc).Where("id = ?", id))
}

func (r *Repo[T]) List(dbc dbctx.Context) ([]*T, error) {
	q := r.Conn(dbc)
	if r.ListOrder != "" {
		q = q.Order(r.ListOrder)
	}
	var out []*T
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repo[T]) Add(dbc dbctx.Context, entity *T) error {
	if a, ok := any(entity).(domainagg.Auditable); ok {
		a.StampCreated(r.now(), ctxutil.Actor(dbc.Ctx))
	}
	if err := r.Conn(dbc).Create(entity).Error; err != nil {
		return err
	}
	uow.Track(dbc.Ctx, entity)
	return nil
}

// Update writes the entity's own columns. Child collections are persisted
// through their own repositories.
func (r *Repo[T]) Update(dbc dbctx.Context, entity *T) error {
	if a, ok := any(entity).(domainagg.Auditable); ok {
		a.StampModified(r.now(), ctxutil.Actor(dbc.Ctx))
	}
	if err := r.Conn(dbc).Omit(clause.Associations).Save(entity).Error; err != nil {
		return err
	}
	uow.Track(dbc.Ctx, entity)
	return nil
}

func (r *Repo[T]) Delete(dbc dbctx.Context, entity *T) error {
	if err := r.Conn(dbc).Delete(entity).Error; err != nil {
		return err
	}
	uow.Track(dbc.Ctx, entity)
	return nil
}

func (r *Repo[T]) Count(dbc dbctx.Context) (int64, error) {
	var n int64
	if err := r.Conn(dbc).Model(new(T)).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo[T]) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now()
}

// Like lowercases term and wraps it for a case-insensitive LIKE match.
func Like(term string) string {
	return "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
}
