package seed

import (
	"context"
	"os"
	"testing"

	"github.com/yungbote/cleanarch-backend/internal/data/repos/testutil"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hashed:" + pw, nil }

func TestLoadFixtures(t *testing.T) {
	f, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.Users) != 4 || f.Users[0].Username != "admin" {
		t.Fatalf("users: %+v", f.Users)
	}
	if len(f.Projects) != 3 || f.Projects[0].Code != "PRJ-2024-001" {
		t.Fatalf("projects: %+v", f.Projects)
	}
	if len(f.WikiPages) != 4 || len(f.Notifications) != 5 {
		t.Fatalf("wiki=%d notifications=%d", len(f.WikiPages), len(f.Notifications))
	}
}

func TestSeedThenClear(t *testing.T) {
	if os.Getenv("TEST_POSTGRES_DSN") != "" {
		t.Skip("seeding writes fixed codes; run against an isolated database")
	}
	ctx := context.Background()
	db := testutil.DB(t)
	s := New(db, testutil.Logger(t), plainHasher{})

	seeded, err := s.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if !seeded {
		t.Fatalf("expected first seed to write fixtures")
	}

	c, err := CountAll(ctx, db)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	want := Counts{Projects: 3, Applications: 6, Capabilities: 8, BusinessRules: 6, WikiPages: 4, Users: 4, Notifications: 5}
	if c != want {
		t.Fatalf("counts: want %+v got %+v", want, c)
	}

	var admin types.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if !admin.HasRole(types.RoleAdmin) || !admin.HasRole(types.RoleUser) {
		t.Fatalf("admin roles: %v", admin.RoleNames())
	}
	if admin.PasswordHash != "hashed:Admin123!" {
		t.Fatalf("admin hash: %q", admin.PasswordHash)
	}

	var published int64
	db.Model(&types.WikiPage{}).Where("is_published = ?", true).Count(&published)
	if published != 3 {
		t.Fatalf("published pages: want 3 got %d", published)
	}
	var versions int64
	db.Model(&types.WikiPageVersion{}).Count(&versions)
	if versions != 4 {
		t.Fatalf("versions: want 4 got %d", versions)
	}

	again, err := s.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if again {
		t.Fatalf("second seed should be skipped")
	}

	removed, err := Clear(ctx, db)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed.Total() != want.Total() {
		t.Fatalf("removed: want %d got %d", want.Total(), removed.Total())
	}
	after, err := CountAll(ctx, db)
	if err != nil {
		t.Fatalf("CountAll after clear: %v", err)
	}
	if after.Total() != 0 {
		t.Fatalf("rows left after clear: %+v", after)
	}
}
