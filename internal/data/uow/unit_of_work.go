package uow

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

// Dispatcher receives the domain events drained from a committed unit of work.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []domainagg.Event)
}

type Deps struct {
	DB         *gorm.DB
	Log        *logger.Logger
	Runner     TxRunner
	Hooks      Hooks
	Dispatcher Dispatcher
}

func (d Deps) withDefaults() Deps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	return d
}

// UnitOfWork runs a set of repository writes in one transaction and
// publishes the resulting domain events once the transaction commits.
type UnitOfWork struct {
	deps Deps
	log  *logger.Logger
}

func New(deps Deps) *UnitOfWork {
	deps = deps.withDefaults()
	return &UnitOfWork{deps: deps, log: deps.Log.With("component", "UnitOfWork")}
}

// SetDispatcher replaces the event dispatcher. Used during wiring when the
// dispatcher itself depends on repositories.
func (u *UnitOfWork) SetDispatcher(d Dispatcher) {
	u.deps.Dispatcher = d
}

// Execute runs fn inside a transaction. Repository writes made through the
// dbctx.Context passed to fn stamp audit fields and register their aggregate.
// On commit all pending events are drained and dispatched; on failure they are
// discarded.
func (u *UnitOfWork) Execute(ctx context.Context, op string, fn func(dbc dbctx.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w := newWork()
	if err := executeWrite(withWork(ctx, w), u.deps, op, fn); err != nil {
		w.discard()
		return err
	}

	events := w.drain()
	if len(events) == 0 || u.deps.Dispatcher == nil {
		return nil
	}
	u.log.Debug("dispatching domain events", "op", op, "count", len(events))
	u.deps.Dispatcher.Dispatch(context.WithoutCancel(ctx), events)
	return nil
}

func executeWrite(ctx context.Context, deps Deps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "uow.write"
	}
	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := errorStatus(mapped)
	if domainagg.IsCode(mapped, domainagg.CodeConflict) {
		deps.Hooks.IncConflict(op)
	}
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}
