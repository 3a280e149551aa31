package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/runlog/internal/migrate"
	"github.com/emiliopalmerini/runlog/migrations"

	_ "github.com/tursodatabase/go-libsql"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run upload history migrations",
	Long: `Run upload history migrations.

Without arguments, applies all pending migrations. With a version number,
migrates up or down to that version.

Migrations also run automatically whenever the database is opened. This
command works on the local file only.

Examples:
  runlog migrate      # Run all pending migrations
  runlog migrate 0    # Roll back all migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	target := -1
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
		target = v
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("libsql", "file:"+cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	return applyMigrations(ctx, cmd, db, target)
}

func applyMigrations(ctx context.Context, cmd *cobra.Command, db *sql.DB, target int) error {
	out := cmd.OutOrStdout()

	before, _, err := migrate.GetCurrentVersion(ctx, db)
	if err != nil {
		// No schema_migrations table yet.
		before = 0
	}
	fmt.Fprintf(out, "Current version: %d\n", before)

	count, err := migrate.To(ctx, db, migrations.FS, target)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(out, "No migrations to run")
		return nil
	}

	after, _, err := migrate.GetCurrentVersion(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated to version %d (%d migrations applied)\n", after, count)
	return nil
}
