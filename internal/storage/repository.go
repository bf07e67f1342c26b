// Package storage persists the ledger in a single named SQLite slot. The slot
// holds the latest full backup JSON and is overwritten on every mutation;
// there is no history, matching the auto-save semantics of the application.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"financas/internal/core"

	_ "modernc.org/sqlite"
)

// DefaultSlot is the single application state slot.
const DefaultSlot = "financas_ledger_v1"

// ErrNotFound signals that the slot holds no ledger yet.
var ErrNotFound = errors.New("no ledger stored in slot")

type SQLiteRepository struct {
	db   *sql.DB
	slot string
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, slot: DefaultSlot}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save overwrites the slot with the given snapshot. Latest write wins; the
// payload is the same portable backup document used for file export, so that
// what is on disk is always importable.
func (r *SQLiteRepository) Save(ctx context.Context, l core.Ledger) error {
	payload, err := core.MarshalBackup(l)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO ledger_slots (slot, year, version, payload, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			year = excluded.year,
			version = excluded.version,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`,
		r.slot, l.Year, l.Version, string(payload))
	if err != nil {
		return fmt.Errorf("upsert ledger slot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger saved",
		"slot", r.slot,
		"year", l.Year,
		"version", l.Version)
	return nil
}

// Load reads the ledger back from the slot. The stored version is restored on
// the snapshot so the in-memory version counter continues from where the last
// process left off.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Ledger, error) {
	var (
		payload string
		version int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, version FROM ledger_slots WHERE slot = ?`, r.slot).
		Scan(&payload, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Ledger{}, ErrNotFound
	}
	if err != nil {
		return core.Ledger{}, fmt.Errorf("query ledger slot: %w", err)
	}

	l, err := core.UnmarshalBackup([]byte(payload))
	if err != nil {
		return core.Ledger{}, fmt.Errorf("decode stored ledger: %w", err)
	}
	l.Version = version
	return l, nil
}
