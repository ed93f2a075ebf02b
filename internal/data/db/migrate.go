package db

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	types "github.com/yungbote/cleanarch-backend/internal/domain"
)

const migrationsTable = "migrations"

// Migrations is the ordered schema history. IDs are never reused.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202401150001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(types.Models()...)
			},
			Rollback: func(tx *gorm.DB) error {
				models := types.Models()
				for i := len(models) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(models[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "202401150002_lookup_indexes",
			Migrate: func(tx *gorm.DB) error {
				stmts := []string{
					`CREATE INDEX IF NOT EXISTS idx_projects_name ON projects(name);`,
					`CREATE INDEX IF NOT EXISTS idx_projects_start_date ON projects(start_date);`,
					`CREATE INDEX IF NOT EXISTS idx_capabilities_name ON capabilities(name);`,
					`CREATE INDEX IF NOT EXISTS idx_business_rules_name ON business_rules(name);`,
					`CREATE INDEX IF NOT EXISTS idx_wiki_pages_title ON wiki_pages(title);`,
					`CREATE INDEX IF NOT EXISTS idx_notifications_created_at ON notifications(created_at);`,
				}
				for _, stmt := range stmts {
					if err := tx.Exec(stmt).Error; err != nil {
						return fmt.Errorf("exec %q: %w", stmt, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, idx := range []string{
					"idx_projects_name",
					"idx_projects_start_date",
					"idx_capabilities_name",
					"idx_business_rules_name",
					"idx_wiki_pages_title",
					"idx_notifications_created_at",
				} {
					if err := tx.Exec("DROP INDEX IF EXISTS " + idx).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	opts := *gormigrate.DefaultOptions
	opts.TableName = migrationsTable
	opts.UseTransaction = true
	return gormigrate.New(db, &opts, Migrations())
}

// Migrate applies every pending migration and returns the IDs it applied.
func Migrate(db *gorm.DB) ([]string, error) {
	pending, err := PendingMigrations(db)
	if err != nil {
		return nil, err
	}
	if err := newMigrator(db).Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return pending, nil
}

// AppliedMigrations lists the IDs recorded in the migrations table.
func AppliedMigrations(db *gorm.DB) ([]string, error) {
	if !db.Migrator().HasTable(migrationsTable) {
		return []string{}, nil
	}
	var ids []string
	if err := db.Table(migrationsTable).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return ids, nil
}

// PendingMigrations lists known migration IDs not yet applied, in order.
func PendingMigrations(db *gorm.DB) ([]string, error) {
	applied, err := AppliedMigrations(db)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(applied))
	for _, id := range applied {
		done[id] = struct{}{}
	}
	pending := []string{}
	for _, m := range Migrations() {
		if _, ok := done[m.ID]; !ok {
			pending = append(pending, m.ID)
		}
	}
	return pending, nil
}

// CanConnect pings the underlying connection pool.
func CanConnect(db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
