package db

import (
	"testing"

	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

func TestMigrateSQLite(t *testing.T) {
	svc, err := NewSQLiteService(logger.Nop(), "file:migrate_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := svc.DB()

	pending, err := PendingMigrations(db)
	if err != nil {
		t.Fatalf("PendingMigrations: %v", err)
	}
	if len(pending) != len(Migrations()) {
		t.Fatalf("fresh db pending: want %d got %d", len(Migrations()), len(pending))
	}

	applied, err := Migrate(db)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(applied) != len(Migrations()) {
		t.Fatalf("applied: want %d got %v", len(Migrations()), applied)
	}
	for _, table := range []string{"projects", "applications", "capabilities", "business_rules", "wiki_pages", "wiki_page_versions", "users", "notifications"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}

	again, err := Migrate(db)
	if err != nil {
		t.Fatalf("Migrate again: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second migrate should apply nothing, got %v", again)
	}
	if !CanConnect(db) {
		t.Fatalf("CanConnect: expected true")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := SQLiteDSN(""); got != "file::memory:?cache=shared&_foreign_keys=on" {
		t.Fatalf("memory dsn: %s", got)
	}
	if got := SQLiteDSN("app.db"); got != "app.db?_foreign_keys=on" {
		t.Fatalf("file dsn: %s", got)
	}
	if got := SQLiteDSN("file:x?mode=memory"); got != "file:x?mode=memory&_foreign_keys=on" {
		t.Fatalf("query dsn: %s", got)
	}
}
