package events

import (
	"context"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/observability"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

// Handler reacts to one committed domain event. Errors are logged, never
// propagated: the write that raised the event has already committed.
type Handler interface {
	Name() string
	Handle(ctx context.Context, event domainagg.Event) error
}

type Dispatcher struct {
	log      *logger.Logger
	metrics  *observability.Metrics
	handlers []Handler
}

func NewDispatcher(log *logger.Logger, metrics *observability.Metrics, handlers ...Handler) *Dispatcher {
	d := &Dispatcher{
		log:     log.With("component", "EventDispatcher"),
		metrics: metrics,
	}
	for _, h := range handlers {
		d.Register(h)
	}
	return d
}

func (d *Dispatcher) Register(h Handler) {
	if h == nil {
		return
	}
	d.handlers = append(d.handlers, h)
}

// Dispatch runs every handler for every event in order.
func (d *Dispatcher) Dispatch(ctx context.Context, events []domainagg.Event) {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		d.metrics.IncDomainEvent(ev.EventName())
		d.log.Info("Domain event", "event", ev.EventName(), "aggregate_id", ev.AggregateID().String(), "occurred_at", ev.OccurredAt())
		for _, h := range d.handlers {
			if err := d.safeHandle(ctx, h, ev); err != nil {
				d.log.Warn("Domain event handler failed", "handler", h.Name(), "event", ev.EventName(), "error", err)
			}
		}
	}
}

func (d *Dispatcher) safeHandle(ctx context.Context, h Handler, ev domainagg.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Domain event handler panicked", "handler", h.Name(), "event", ev.EventName(), "panic", r)
		}
	}()
	return h.Handle(ctx, ev)
}
