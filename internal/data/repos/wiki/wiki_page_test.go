package wiki

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	domainwiki "github.com/yungbote/cleanarch-backend/internal/domain/wiki"
	"github.com/yungbote/cleanarch-backend/internal/platform/dbctx"
)

func TestWikiPageRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewWikiPageRepo(db, testutil.Logger(t))
	author := testutil.SeedUser(t, ctx, tx, "wikiauthor")

	page, err := domainwiki.NewPage("Deployment Guide", "Step one", "Operations", author.ID)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if err := repo.Add(dbc, page); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := page.Update("Step one\nStep two", "Added step two", author.ID); err != nil {
		t.Fatalf("page Update: %v", err)
	}
	if _, err := page.Update("Step one\nStep two\nStep three", "Added step three", author.ID); err != nil {
		t.Fatalf("page Update: %v", err)
	}
	page.Publish(time.Now())
	if err := repo.Update(dbc, page); err != nil {
		t.Fatalf("repo Update: %v", err)
	}

	loaded, err := repo.GetWithVersions(dbc, page.ID)
	if err != nil || loaded == nil {
		t.Fatalf("GetWithVersions: err=%v", err)
	}
	if len(loaded.Versions) != 3 {
		t.Fatalf("versions: want 3 got %d", len(loaded.Versions))
	}
	for i, v := range loaded.Versions {
		if want := 3 - i; v.VersionNumber != want {
			t.Fatalf("version order: index %d want %d got %d", i, want, v.VersionNumber)
		}
	}
	if !loaded.IsPublished {
		t.Fatalf("expected page to be published")
	}

	bySlug, err := repo.GetBySlug(dbc, "deployment-guide")
	if err != nil || bySlug == nil || bySlug.ID != page.ID {
		t.Fatalf("GetBySlug: err=%v page=%v", err, bySlug)
	}
	if exists, err := repo.SlugExists(dbc, "deployment-guide"); err != nil || !exists {
		t.Fatalf("SlugExists: err=%v exists=%v", err, exists)
	}

	testutil.SeedWikiPage(t, ctx, tx, "Coding Standards", author.ID)

	published, err := repo.ListPublished(dbc)
	if err != nil || len(published) != 1 {
		t.Fatalf("ListPublished: err=%v len=%d", err, len(published))
	}
	if n, err := repo.CountPublished(dbc); err != nil || n != 1 {
		t.Fatalf("CountPublished: err=%v n=%d", err, n)
	}

	hits, err := repo.Search(dbc, WikiPageFilter{SearchTerm: "step three"})
	if err != nil || len(hits) != 1 || hits[0].ID != page.ID {
		t.Fatalf("Search: err=%v hits=%+v", err, hits)
	}

	versions, err := repo.ListVersions(dbc, page.ID)
	if err != nil || len(versions) != 3 {
		t.Fatalf("ListVersions: err=%v len=%d", err, len(versions))
	}
}
