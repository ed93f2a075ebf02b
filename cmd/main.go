package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/cleanarch-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cleanarch",
		Short:        "Project portfolio and business rules API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	cmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		return err
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Log.Error("Server failed", "error", err)
		return err
	}
	return nil
}

func migrateCmd() *cobra.Command {
	var status bool
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := app.NewCore()
			if err != nil {
				return err
			}
			defer core.Close()

			if status {
				return printMigrationStatus(core)
			}
			applied, err := core.Migrate()
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("Database is already up to date")
				return nil
			}
			fmt.Printf("Applied %d migration(s)\n", len(applied))
			for _, id := range applied {
				fmt.Println("  " + id)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&status, "status", false, "list applied and pending migrations without applying")
	return c
}

func printMigrationStatus(core *app.Core) error {
	applied, err := core.AppliedMigrations()
	if err != nil {
		return err
	}
	pending, err := core.PendingMigrations()
	if err != nil {
		return err
	}
	for _, id := range applied {
		fmt.Println("applied  " + id)
	}
	for _, id := range pending {
		fmt.Println("pending  " + id)
	}
	return nil
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := app.NewCore()
			if err != nil {
				return err
			}
			defer core.Close()

			if _, err := core.Migrate(); err != nil {
				return err
			}
			seeded, err := core.Seeder().Seed(cmd.Context())
			if err != nil {
				return err
			}
			if !seeded {
				fmt.Println("Database already contains data; seeding skipped")
				return nil
			}
			fmt.Println("Sample data seeded")
			return nil
		},
	}
}
