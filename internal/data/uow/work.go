package uow

import (
	"context"
	"sync"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

type workKey struct{}

// work collects the aggregates written during one Execute call.
type work struct {
	mu      sync.Mutex
	tracked []domainagg.EventSource
	seen    map[domainagg.EventSource]struct{}
}

func newWork() *work {
	return &work{seen: map[domainagg.EventSource]struct{}{}}
}

func withWork(ctx context.Context, w *work) context.Context {
	return context.WithValue(ctx, workKey{}, w)
}

func workFrom(ctx context.Context) *work {
	if ctx == nil {
		return nil
	}
	w, _ := ctx.Value(workKey{}).(*work)
	return w
}

// Track registers entity with the unit of work running in ctx, if any.
// Entities that record no events are ignored.
func Track(ctx context.Context, entity any) {
	w := workFrom(ctx)
	if w == nil {
		return
	}
	src, ok := entity.(domainagg.EventSource)
	if !ok {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, dup := w.seen[src]; dup {
		return
	}
	w.seen[src] = struct{}{}
	w.tracked = append(w.tracked, src)
}

// InWork reports whether ctx belongs to a running unit of work.
func InWork(ctx context.Context) bool {
	return workFrom(ctx) != nil
}

// drain collects pending events from every tracked entity in tracking order
// and clears them.
func (w *work) drain() []domainagg.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []domainagg.Event
	for _, src := range w.tracked {
		out = append(out, src.PendingEvents()...)
		src.ClearEvents()
	}
	w.tracked = nil
	w.seen = map[domainagg.EventSource]struct{}{}
	return out
}

func (w *work) discard() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, src := range w.tracked {
		src.ClearEvents()
	}
	w.tracked = nil
	w.seen = map[domainagg.EventSource]struct{}{}
}
