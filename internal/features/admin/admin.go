// Package admin exposes database maintenance to administrators.
package admin

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/cleanarch-backend/internal/data/db"
	"github.com/yungbote/cleanarch-backend/internal/data/seed"
	types "github.com/yungbote/cleanarch-backend/internal/domain"
	domainagg "github.com/yungbote/cleanarch-backend/internal/domain/aggregates"
	"github.com/yungbote/cleanarch-backend/internal/features"
	"github.com/yungbote/cleanarch-backend/internal/mediator"
	"github.com/yungbote/cleanarch-backend/internal/platform/logger"
)

const (
	ClearConfirmation = "CONFIRM_DELETE_ALL_DATA"
	DevelopmentEnv    = "development"
)

type Deps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Seeder *seed.Seeder
	// Env is the deployment environment; clearing data requires DevelopmentEnv.
	Env string
}

type DatabaseInfo struct {
	DatabaseName       string   `json:"databaseName"`
	CanConnect         bool     `json:"canConnect"`
	PendingMigrations  []string `json:"pendingMigrations"`
	AppliedMigrations  []string `json:"appliedMigrations"`
	ProjectsCount      int64    `json:"projectsCount"`
	ApplicationsCount  int64    `json:"applicationsCount"`
	CapabilitiesCount  int64    `json:"capabilitiesCount"`
	BusinessRulesCount int64    `json:"businessRulesCount"`
	WikiPagesCount     int64    `json:"wikiPagesCount"`
	UsersCount         int64    `json:"usersCount"`
	NotificationsCount int64    `json:"notificationsCount"`
}

type MigrationResult struct {
	Success           bool     `json:"success"`
	Message           string   `json:"message"`
	MigrationsApplied []string `json:"migrationsApplied"`
}

type SeedResult struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	ProjectsSeeded      int64  `json:"projectsSeeded"`
	ApplicationsSeeded  int64  `json:"applicationsSeeded"`
	CapabilitiesSeeded  int64  `json:"capabilitiesSeeded"`
	BusinessRulesSeeded int64  `json:"businessRulesSeeded"`
	WikiPagesSeeded     int64  `json:"wikiPagesSeeded"`
	UsersSeeded         int64  `json:"usersSeeded"`
	NotificationsSeeded int64  `json:"notificationsSeeded"`
}

type ClearResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RecordsDeleted int64  `json:"recordsDeleted"`
}

type GetDatabaseInfoQuery struct{}

type MigrateDatabaseCommand struct{}

type SeedDatabaseCommand struct{}

type ClearDatabaseCommand struct {
	Confirmation string `form:"confirmation" json:"confirmation"`
}

type handlers struct {
	d   Deps
	log *logger.Logger
}

func (h handlers) info(ctx context.Context, _ GetDatabaseInfoQuery) (DatabaseInfo, error) {
	const op = "admin.database_info"
	if _, err := features.RequireRole(ctx, op, types.RoleAdmin); err != nil {
		return DatabaseInfo{}, err
	}
	gdb := h.d.DB.WithContext(ctx)
	applied, err := db.AppliedMigrations(gdb)
	if err != nil {
		return DatabaseInfo{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	pending, err := db.PendingMigrations(gdb)
	if err != nil {
		return DatabaseInfo{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	counts, err := seed.CountAll(ctx, h.d.DB)
	if err != nil {
		return DatabaseInfo{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return DatabaseInfo{
		DatabaseName:       gdb.Migrator().CurrentDatabase(),
		CanConnect:         db.CanConnect(h.d.DB),
		PendingMigrations:  pending,
		AppliedMigrations:  applied,
		ProjectsCount:      counts.Projects,
		ApplicationsCount:  counts.Applications,
		CapabilitiesCount:  counts.Capabilities,
		BusinessRulesCount: counts.BusinessRules,
		WikiPagesCount:     counts.WikiPages,
		UsersCount:         counts.Users,
		NotificationsCount: counts.Notifications,
	}, nil
}

func (h handlers) migrate(ctx context.Context, _ MigrateDatabaseCommand) (MigrationResult, error) {
	const op = "admin.migrate"
	if _, err := features.RequireRole(ctx, op, types.RoleAdmin); err != nil {
		return MigrationResult{}, err
	}
	h.log.Info("Manual migration requested")
	applied, err := db.Migrate(h.d.DB.WithContext(ctx))
	if err != nil {
		h.log.Error("Manual migration failed", "error", err)
		return MigrationResult{}, domainagg.NewError(domainagg.CodePreconditionFailed, op, "Migration failed: "+err.Error(), err)
	}
	if len(applied) == 0 {
		return MigrationResult{Success: true, Message: "Database is already up to date", MigrationsApplied: []string{}}, nil
	}
	return MigrationResult{
		Success:           true,
		Message:           fmt.Sprintf("Applied %d migration(s)", len(applied)),
		MigrationsApplied: applied,
	}, nil
}

func (h handlers) seed(ctx context.Context, _ SeedDatabaseCommand) (SeedResult, error) {
	const op = "admin.seed"
	if _, err := features.RequireRole(ctx, op, types.RoleAdmin); err != nil {
		return SeedResult{}, err
	}
	h.log.Info("Manual seed requested")
	seeded, err := h.d.Seeder.Seed(ctx)
	if err != nil {
		h.log.Error("Manual seed failed", "error", err)
		return SeedResult{}, domainagg.NewError(domainagg.CodePreconditionFailed, op, "Seed failed: "+err.Error(), err)
	}
	counts, err := seed.CountAll(ctx, h.d.DB)
	if err != nil {
		return SeedResult{}, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	msg := "Database seeded successfully"
	if !seeded {
		msg = "Database already contains data, seeding skipped"
	}
	return SeedResult{
		Success:             true,
		Message:             msg,
		ProjectsSeeded:      counts.Projects,
		ApplicationsSeeded:  counts.Applications,
		CapabilitiesSeeded:  counts.Capabilities,
		BusinessRulesSeeded: counts.BusinessRules,
		WikiPagesSeeded:     counts.WikiPages,
		UsersSeeded:         counts.Users,
		NotificationsSeeded: counts.Notifications,
	}, nil
}

func (h handlers) clear(ctx context.Context, cmd ClearDatabaseCommand) (ClearResult, error) {
	const op = "admin.clear"
	if _, err := features.RequireRole(ctx, op, types.RoleAdmin); err != nil {
		return ClearResult{}, err
	}
	if cmd.Confirmation != ClearConfirmation {
		return ClearResult{}, domainagg.Validationf(op, "To confirm, send confirmation=%s", ClearConfirmation)
	}
	if !strings.EqualFold(strings.TrimSpace(h.d.Env), DevelopmentEnv) {
		return ClearResult{}, domainagg.Forbidden(op, "This operation is only available in the development environment")
	}
	h.log.Warn("Database clear requested")
	removed, err := seed.Clear(ctx, h.d.DB)
	if err != nil {
		return ClearResult{}, domainagg.NewError(domainagg.CodePreconditionFailed, op, "Clear failed: "+err.Error(), err)
	}
	h.log.Warn("Database cleared", "records_deleted", removed.Total())
	return ClearResult{Success: true, Message: "All data cleared successfully", RecordsDeleted: removed.Total()}, nil
}

func Register(m *mediator.Mediator, d Deps) {
	h := handlers{d: d, log: d.Log.With("handler", "Admin")}
	mediator.Register[GetDatabaseInfoQuery, DatabaseInfo](m, h.info)
	mediator.Register[MigrateDatabaseCommand, MigrationResult](m, h.migrate)
	mediator.Register[SeedDatabaseCommand, SeedResult](m, h.seed)
	mediator.Register[ClearDatabaseCommand, ClearResult](m, h.clear)
}
