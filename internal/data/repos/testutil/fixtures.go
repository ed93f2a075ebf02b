package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/domain/portfolio"
	"github.com/yungbote/cleanarch-backend/internal/domain/user"
	"github.com/yungbote/cleanarch-backend/internal/domain/valueobject"
	"github.com/yungbote/cleanarch-backend/internal/domain/wiki"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *user.User {
	tb.Helper()
	u, err := user.New(username, username+"@example.com", "hash", "Test User")
	if err != nil {
		tb.Fatalf("build user: %v", err)
	}
	_ = u.AddRole(user.RoleUser)
	u.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, code, name string) *portfolio.Project {
	tb.Helper()
	pc, err := valueobject.NewProjectCode(code)
	if err != nil {
		tb.Fatalf("project code: %v", err)
	}
	p, err := portfolio.NewProject(pc, name, name+" description", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Manager")
	if err != nil {
		tb.Fatalf("build project: %v", err)
	}
	p.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedApplication(tb testing.TB, ctx context.Context, tx *gorm.DB, projectID uuid.UUID, name string) *portfolio.Application {
	tb.Helper()
	a, err := portfolio.NewApplication(projectID, name, name+" description", portfolio.ApplicationTypeNew, valueobject.InitialVersion())
	if err != nil {
		tb.Fatalf("build application: %v", err)
	}
	a.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed application: %v", err)
	}
	return a
}

func SeedCapability(tb testing.TB, ctx context.Context, tx *gorm.DB, applicationID uuid.UUID, name string, priority portfolio.Priority) *portfolio.Capability {
	tb.Helper()
	c, err := portfolio.NewCapability(applicationID, name, name+" description", portfolio.CapabilityCategoryFeature, priority)
	if err != nil {
		tb.Fatalf("build capability: %v", err)
	}
	c.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed capability: %v", err)
	}
	return c
}

func SeedBusinessRule(tb testing.TB, ctx context.Context, tx *gorm.DB, capabilityID uuid.UUID, code, name string) *portfolio.BusinessRule {
	tb.Helper()
	rc, err := valueobject.NewRuleCode(code)
	if err != nil {
		tb.Fatalf("rule code: %v", err)
	}
	r, err := portfolio.NewBusinessRule(capabilityID, rc, name, name+" description", portfolio.BusinessRuleTypeValidation, portfolio.PriorityMedium)
	if err != nil {
		tb.Fatalf("build business rule: %v", err)
	}
	r.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed business rule: %v", err)
	}
	return r
}

func SeedWikiPage(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, authorID uuid.UUID) *wiki.Page {
	tb.Helper()
	p, err := wiki.NewPage(title, "# "+title, "General", authorID)
	if err != nil {
		tb.Fatalf("build wiki page: %v", err)
	}
	p.CreatedAt = time.Now().UTC()
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed wiki page: %v", err)
	}
	return p
}
