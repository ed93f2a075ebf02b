package uow_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/cleanarch-backend/internal/data/repos"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	"github.com/yungbote/cleanarch-backend/internal/data/uow"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/platform/ctxutil"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

type collectingDispatcher struct {
	mu     sync.Mutex
	events []domainagg.Event
}

func (d *collectingDispatcher) Dispatch(_ context.Context, events []domainagg.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
}

func (d *collectingDispatcher) names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.EventName())
	}
	return out
}

// uniqueCode keeps runs against a shared Postgres database independent.
func uniqueCode(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func newProject(t *testing.T, code string) *portfolio.Project {
	t.Helper()
	pc, err := valueobject.NewProjectCode(code)
	if err != nil {
		t.Fatalf("NewProjectCode: %v", err)
	}
	p, err := portfolio.NewProject(pc, "Unit of work", "Integration", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Lead")
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	return p
}

func TestUnitOfWorkCommitsStampsAndDispatches(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	projects := repos.NewProjectRepo(db, log)
	disp := &collectingDispatcher{}
	u := uow.New(uow.Deps{DB: db, Log: log, Dispatcher: disp})

	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{Username: "jdoe"})
	p := newProject(t, uniqueCode("PRJ-UOW"))
	err := u.Execute(ctx, "project.create", func(dbc dbctx.Context) error {
		return projects.Add(dbc, p)
	})
	if err != nil {
		t.Fatalf("Execute create: %v", err)
	}
	if got := disp.names(); len(got) != 1 || got[0] != portfolio.EventProjectCreated {
		t.Fatalf("dispatched events: %v", got)
	}

	stored, err := projects.GetByID(dbctx.New(ctx), p.ID)
	if err != nil || stored == nil {
		t.Fatalf("GetByID: err=%v", err)
	}
	if stored.CreatedBy != "jdoe" {
		t.Fatalf("CreatedBy: want jdoe got %q", stored.CreatedBy)
	}

	err = u.Execute(ctx, "project.change_status", func(dbc dbctx.Context) error {
		if err := stored.ChangeStatus(portfolio.ProjectStatusInProgress); err != nil {
			return err
		}
		return projects.Update(dbc, stored)
	})
	if err != nil {
		t.Fatalf("Execute update: %v", err)
	}
	if got := disp.names(); len(got) != 2 || got[1] != portfolio.EventProjectStatusChanged {
		t.Fatalf("dispatched events after update: %v", got)
	}
}

func TestUnitOfWorkMapsDuplicateCodeToConflict(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	projects := repos.NewProjectRepo(db, log)
	disp := &collectingDispatcher{}
	u := uow.New(uow.Deps{DB: db, Log: log, Dispatcher: disp})
	ctx := context.Background()
	code := uniqueCode("PRJ-DUP")

	if err := u.Execute(ctx, "project.create", func(dbc dbctx.Context) error {
		return projects.Add(dbc, newProject(t, code))
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := u.Execute(ctx, "project.create", func(dbc dbctx.Context) error {
		return projects.Add(dbc, newProject(t, code))
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate code: want conflict got %v", err)
	}
	if got := disp.names(); len(got) != 1 {
		t.Fatalf("rolled back write must not dispatch, got %v", got)
	}
	if exists, err := projects.CodeExists(dbctx.New(ctx), code); err != nil || !exists {
		t.Fatalf("CodeExists: err=%v exists=%v", err, exists)
	}
}
