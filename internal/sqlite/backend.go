// Package sqlite implements the donations store on SQLite: schema management,
// a generic CRUD engine driven by per-entity descriptors, and the
// restrict-by-default deletion policy.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/donations/pkg/types"
)

const driverName = "sqlite"

// Backend owns the process-wide database handle. It is constructed once at
// startup, attached to a database file, and detached on exit.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB
	logger   ectologger.Logger
}

// NewBackend creates a detached backend that logs through logger.
func NewBackend(logger ectologger.Logger) *Backend {
	return &Backend{logger: logger}
}

// dsn enables foreign keys on every connection the driver opens.
func dsn(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Attach opens the database file, enforces foreign keys, and prepares the
// schema. With ResetOnStart every table is dropped and recreated; with
// SeedSampleData the sample rows are inserted afterwards.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(config.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Open(driverName, dsn(config.DBPath))
	if err != nil {
		return &types.StorageError{Op: "open", Err: err}
	}
	// One connection keeps the foreign_keys pragma on the only handle in use.
	db.SetMaxOpenConns(1)

	if err := b.enableForeignKeys(ctx, db); err != nil {
		db.Close()
		return err
	}

	if config.ResetOnStart {
		err = b.resetSchema(ctx, db)
	} else {
		err = b.createSchema(ctx, db)
	}
	if err != nil {
		db.Close()
		return err
	}

	if config.SeedSampleData {
		if err := b.seed(ctx, db); err != nil {
			db.Close()
			return err
		}
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.WithContext(ctx).WithFields(map[string]any{
		"db_path": config.DBPath,
		"reset":   config.ResetOnStart,
		"seeded":  config.SeedSampleData,
	}).Info("store attached")
	return nil
}

// Detach closes the database handle. Detach is idempotent; after it every
// operation returns ErrDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return &types.StorageError{Op: "close", Err: err}
	}
	return nil
}

// handle returns the open database. The caller must hold b.mu.
func (b *Backend) handle() (*sqlx.DB, error) {
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// enableForeignKeys turns enforcement on and reads it back. SQLite defaults
// it off, which would silently disable every restrict rule.
func (b *Backend) enableForeignKeys(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return b.storageError(ctx, "enable foreign keys", err)
	}
	var on int
	if err := db.GetContext(ctx, &on, "PRAGMA foreign_keys"); err != nil {
		return b.storageError(ctx, "read foreign keys", err)
	}
	if on != 1 {
		return types.ErrForeignKeysDisabled
	}
	return nil
}

// withTx runs fn in one transaction. The transaction is rolled back on every
// path that does not reach Commit.
func (b *Backend) withTx(ctx context.Context, db *sqlx.DB, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return b.storageError(ctx, op, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return b.storageError(ctx, op, err)
	}
	return nil
}
