package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainportfolio "github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

func TestProjectRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewProjectRepo(db, testutil.Logger(t))

	code, err := valueobject.NewProjectCode("prj-repo-001")
	if err != nil {
		t.Fatalf("NewProjectCode: %v", err)
	}
	p, err := domainportfolio.NewProject(code, "Billing Platform", "Invoices and payments", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Ana")
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	budget, err := valueobject.ParseMoney("1500.50", "usd")
	if err != nil {
		t.Fatalf("ParseMoney: %v", err)
	}
	p.SetBudget(budget)
	if err := repo.Add(dbc, p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.CreatedBy != "system" {
		t.Fatalf("CreatedBy: want system got %q", p.CreatedBy)
	}

	got, err := repo.GetByCode(dbc, "PRJ-REPO-001")
	if err != nil || got == nil {
		t.Fatalf("GetByCode: err=%v got=%v", err, got)
	}
	if got.Code.String() != "PRJ-REPO-001" || got.Name != "Billing Platform" {
		t.Fatalf("GetByCode: unexpected project %+v", got)
	}
	if got.Budget == nil || got.Budget.String() != "1500.50 USD" {
		t.Fatalf("budget round trip: %v", got.Budget)
	}

	if exists, err := repo.CodeExists(dbc, "prj-repo-001"); err != nil || !exists {
		t.Fatalf("CodeExists: err=%v exists=%v", err, exists)
	}
	if exists, err := repo.CodeExists(dbc, "PRJ-NONE"); err != nil || exists {
		t.Fatalf("CodeExists (missing): err=%v exists=%v", err, exists)
	}

	other := testutil.SeedProject(t, ctx, tx, "PRJ-REPO-002", "Analytics Hub")
	testutil.SeedApplication(t, ctx, tx, other.ID, "Dashboard")

	status := domainportfolio.ProjectStatusPlanning
	rows, err := repo.Search(dbc, ProjectFilter{Status: &status, SearchTerm: "analytics"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != other.ID {
		t.Fatalf("Search: unexpected rows %+v", rows)
	}
	if len(rows[0].Applications) != 1 {
		t.Fatalf("Search: applications not preloaded")
	}

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rows, err = repo.Search(dbc, ProjectFilter{StartDateFrom: &from})
	if err != nil {
		t.Fatalf("Search by date: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != p.ID {
		t.Fatalf("Search by date: unexpected rows %+v", rows)
	}

	if err := got.ChangeStatus(domainportfolio.ProjectStatusInProgress); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if err := repo.Update(dbc, got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	counts, err := repo.CountByStatus(dbc)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[domainportfolio.ProjectStatusInProgress] != 1 || counts[domainportfolio.ProjectStatusPlanning] != 1 {
		t.Fatalf("CountByStatus: unexpected %v", counts)
	}

	recent, err := repo.ListRecent(dbc, 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("ListRecent: err=%v len=%d", err, len(recent))
	}

	if n, err := repo.Count(dbc); err != nil || n != 2 {
		t.Fatalf("Count: err=%v n=%d", err, n)
	}
	if err := repo.Delete(dbc, other); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gone, err := repo.GetByID(dbc, other.ID); err != nil || gone != nil {
		t.Fatalf("after Delete GetByID: err=%v got=%v", err, gone)
	}
}
