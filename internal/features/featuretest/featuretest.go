// Package featuretest builds the handler dependencies used by feature tests.
package featuretest

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/realtime"
	"github.com/yungbote/cleanarch-backend/internal/services"
)

type Harness struct {
	DB       *gorm.DB
	Deps     features.Deps
	Mediator *mediator.Mediator
	Notifier *RecordingNotifier
	Events   *RecordingDispatcher
}

// New wires a fresh database, unit of work and mediator with validation.
func New(tb testing.TB) *Harness {
	tb.Helper()
	db := testutil.DB(tb)
	log := testutil.Logger(tb)

	events := &RecordingDispatcher{}
	notifier := &RecordingNotifier{}
	tokens, err := services.NewTokenService(log, services.TokenConfig{
		SecretKey: strings.Repeat("k", 40),
	})
	if err != nil {
		tb.Fatalf("token service: %v", err)
	}

	deps := features.Deps{
		Log:       log,
		Repos:     repos.NewSet(db, log),
		UoW:       uow.New(uow.Deps{DB: db, Log: log, Dispatcher: events}),
		Notifier:  notifier,
		Tokens:    tokens,
		Passwords: services.NewPasswordHasher(4),
		Clock:     func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	m := mediator.New(mediator.Validating(mediator.NewValidator()))
	return &Harness{DB: db, Deps: deps, Mediator: m, Notifier: notifier, Events: events}
}

// AsUser returns ctx carrying an authenticated principal.
func AsUser(ctx context.Context, id uuid.UUID, username string, roles ...string) context.Context {
	if len(roles) == 0 {
		roles = []string{types.RoleUser}
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: id, Username: username, Roles: roles})
}

// Unique suffixes prefix so fixtures never collide on a shared database.
func Unique(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

type RecordingDispatcher struct {
	mu     sync.Mutex
	events []domainagg.Event
}

func (d *RecordingDispatcher) Dispatch(_ context.Context, events []domainagg.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *RecordingDispatcher) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.EventName())
	}
	return out
}

type RecordingNotifier struct {
	mu       sync.Mutex
	Pushed         []*types.Notification
	PresenceEvents []realtime.Event
}

func (n *RecordingNotifier) Push(_ context.Context, note *types.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Pushed = append(n.Pushed, note)
}

func (n *RecordingNotifier) Presence(_ context.Context, event realtime.Event, _ uuid.UUID, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.PresenceEvents = append(n.PresenceEvents, event)
}

func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Pushed)
}
