package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainportfolio "github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

func TestCapabilityAndRuleRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	caps := NewCapabilityRepo(db, testutil.Logger(t))
	rules := NewBusinessRuleRepo(db, testutil.Logger(t))
	apps := NewApplicationRepo(db, testutil.Logger(t))

	p := testutil.SeedProject(t, ctx, tx, "PRJ-CAP-001", "Capabilities")
	app := testutil.SeedApplication(t, ctx, tx, p.ID, "Portal")
	login := testutil.SeedCapability(t, ctx, tx, app.ID, "Login", domainportfolio.PriorityCritical)
	reports := testutil.SeedCapability(t, ctx, tx, app.ID, "Reports", domainportfolio.PriorityLow)
	testutil.SeedBusinessRule(t, ctx, tx, login.ID, "BR-AUTH-01", "Password length")
	testutil.SeedBusinessRule(t, ctx, tx, login.ID, "BR-AUTH-02", "Lockout")
	testutil.SeedBusinessRule(t, ctx, tx, reports.ID, "BR-REP-01", "Monthly totals")

	byApp, err := caps.ListByApplication(dbc, app.ID)
	if err != nil {
		t.Fatalf("ListByApplication: %v", err)
	}
	if len(byApp) != 2 || byApp[0].ID != reports.ID {
		t.Fatalf("ListByApplication: expected priority ascending, got %+v", byApp)
	}

	withRules, err := caps.GetWithRules(dbc, login.ID)
	if err != nil || withRules == nil {
		t.Fatalf("GetWithRules: err=%v", err)
	}
	if len(withRules.BusinessRules) != 2 {
		t.Fatalf("GetWithRules: want 2 rules got %d", len(withRules.BusinessRules))
	}

	top, err := caps.TopByRuleCount(dbc, 10)
	if err != nil {
		t.Fatalf("TopByRuleCount: %v", err)
	}
	if len(top) != 2 || top[0].ID != login.ID || top[0].BusinessRulesCount != 2 || top[0].ApplicationName != "Portal" {
		t.Fatalf("TopByRuleCount: unexpected %+v", top)
	}

	found, err := caps.Search(dbc, CapabilityFilter{SearchTerm: "REPO"})
	if err != nil || len(found) != 1 || found[0].ID != reports.ID {
		t.Fatalf("Search capabilities: err=%v rows=%+v", err, found)
	}

	if exists, err := rules.CodeExists(dbc, "br-auth-01"); err != nil || !exists {
		t.Fatalf("rule CodeExists: err=%v exists=%v", err, exists)
	}
	byCap, err := rules.ListByCapability(dbc, login.ID)
	if err != nil || len(byCap) != 2 {
		t.Fatalf("ListByCapability: err=%v len=%d", err, len(byCap))
	}
	ruleHits, err := rules.Search(dbc, BusinessRuleFilter{SearchTerm: "lockout"})
	if err != nil || len(ruleHits) != 1 {
		t.Fatalf("rule Search: err=%v len=%d", err, len(ruleHits))
	}

	rule, err := rules.GetByCode(dbc, "BR-AUTH-02")
	if err != nil || rule == nil {
		t.Fatalf("GetByCode: err=%v", err)
	}
	if err := rule.AddExample("5 failed attempts lock the account"); err != nil {
		t.Fatalf("AddExample: %v", err)
	}
	if err := rules.Update(dbc, rule); err != nil {
		t.Fatalf("rule Update: %v", err)
	}
	reloaded, err := rules.GetByID(dbc, rule.ID)
	if err != nil || reloaded == nil || len(reloaded.Examples) != 1 {
		t.Fatalf("examples not persisted: err=%v rule=%+v", err, reloaded)
	}

	if n, err := apps.CountByProject(dbc, p.ID); err != nil || n != 1 {
		t.Fatalf("CountByProject: err=%v n=%d", err, n)
	}
	names, err := apps.NamesByIDs(dbc, []uuid.UUID{app.ID})
	if err != nil || names[app.ID] != "Portal" {
		t.Fatalf("NamesByIDs: err=%v names=%v", err, names)
	}
}
