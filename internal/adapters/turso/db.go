package turso

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/runlog/internal/migrate"
)

// Config locates the upload history database. With a RemoteURL the local
// file is an embedded replica of that Turso database.
type Config struct {
	Path      string `envconfig:"RUNLOG_DATABASE_PATH"`
	RemoteURL string `envconfig:"RUNLOG_TURSO_URL"`
	AuthToken string `envconfig:"RUNLOG_TURSO_AUTH_TOKEN"`
}

// DB wraps the history database connection.
type DB struct {
	*sql.DB
	connector *libsql.Connector
}

// Open opens the database at cfg.Path and applies pending migrations.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db := &DB{}
	if cfg.RemoteURL != "" {
		connector, err := libsql.NewEmbeddedReplicaConnector(cfg.Path, cfg.RemoteURL,
			libsql.WithAuthToken(cfg.AuthToken),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create embedded replica: %w", err)
		}
		db.connector = connector
		db.DB = sql.OpenDB(connector)
	} else {
		sqlDB, err := sql.Open("libsql", "file:"+cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.DB = sqlDB
	}

	// Single writer; the CLI never runs concurrent statements.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate.RunAll(ctx, db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Sync pushes local writes to the remote primary. It is a no-op for a
// local-only database.
func (d *DB) Sync() error {
	if d.connector == nil {
		return nil
	}
	if _, err := d.connector.Sync(); err != nil {
		return fmt.Errorf("failed to sync replica: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	err := d.DB.Close()
	if d.connector != nil {
		if cerr := d.connector.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
