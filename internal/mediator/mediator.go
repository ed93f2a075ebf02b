// Package mediator dispatches commands and queries to exactly one registered
// handler through an ordered chain of behaviors.
package mediator

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
)

// HandlerFunc handles one request type.
type HandlerFunc[Req any, Resp any] func(ctx context.Context, req Req) (Resp, error)

// Next continues the behavior chain.
type Next func(ctx context.Context) (any, error)

// Behavior wraps every dispatch. name is the request's type name.
type Behavior func(ctx context.Context, name string, req any, next Next) (any, error)

type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]func(ctx context.Context, req any) (any, error)
	behaviors []Behavior
}

func New(behaviors ...Behavior) *Mediator {
	return &Mediator{
		handlers:  make(map[reflect.Type]func(ctx context.Context, req any) (any, error)),
		behaviors: behaviors,
	}
}

// Use appends behaviors; the first registered runs outermost.
func (m *Mediator) Use(behaviors ...Behavior) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behaviors = append(m.behaviors, behaviors...)
}

// Register binds h to Req. Registering the same request type twice panics.
func Register[Req any, Resp any](m *Mediator, h HandlerFunc[Req, Resp]) {
	key := typeOf[Req]()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.handlers[key]; exists {
		panic(fmt.Sprintf("mediator: handler for %s already registered", key))
	}
	m.handlers[key] = func(ctx context.Context, req any) (any, error) {
		return h(ctx, req.(Req))
	}
}

// Send dispatches req to its handler.
func Send[Req any, Resp any](ctx context.Context, m *Mediator, req Req) (Resp, error) {
	var zero Resp
	key := typeOf[Req]()
	name := RequestName(req)

	m.mu.RLock()
	handler, ok := m.handlers[key]
	behaviors := m.behaviors
	m.mu.RUnlock()
	if !ok {
		return zero, domainagg.NewError(domainagg.CodeInternal, "mediator.send", fmt.Sprintf("No handler registered for %s", name), nil)
	}

	next := func(ctx context.Context) (any, error) { return handler(ctx, req) }
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) { return b(ctx, name, req, inner) }
	}

	out, err := next(ctx)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	resp, ok := out.(Resp)
	if !ok {
		return zero, domainagg.NewError(domainagg.CodeInternal, "mediator.send", fmt.Sprintf("%s returned %T", name, out), nil)
	}
	return resp, nil
}

// RequestName is the bare type name of req, e.g. "CreateProjectCommand".
func RequestName(req any) string {
	t := reflect.TypeOf(req)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Unit is the response of commands that return nothing.
type Unit struct{}
