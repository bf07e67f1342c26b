// Package worker consumes ledger sync messages and pushes the latest persisted
// snapshot to the external spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/sheets"
)

// LedgerLoader reads the persisted ledger snapshot.
type LedgerLoader interface {
	Load(ctx context.Context) (core.Ledger, error)
}

// SyncWorker replays persisted ledger snapshots onto the configured publisher.
// The snapshot on disk is always the latest, so processing a stale message
// still publishes current data; versions are only used to skip no-op work.
type SyncWorker struct {
	store     LedgerLoader
	publisher sheets.LedgerPublisher

	lastPublished int64
}

func NewSyncWorker(store LedgerLoader, publisher sheets.LedgerPublisher) *SyncWorker {
	return &SyncWorker{store: store, publisher: publisher}
}

// HandleSyncMessage processes a single ledger sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"year", msg.Year,
		"version", msg.Version)

	ledger, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger from storage: %w", err)
	}

	if ledger.Version <= w.lastPublished {
		slog.InfoContext(ctx, "Snapshot already published, skipping",
			"version", ledger.Version,
			"last_published", w.lastPublished)
		return nil
	}

	if err := w.publisher.PublishLedger(ctx, ledger); err != nil {
		return fmt.Errorf("publish ledger: %w", err)
	}
	w.lastPublished = ledger.Version

	slog.InfoContext(ctx, "Ledger snapshot synced",
		"year", ledger.Year,
		"version", ledger.Version)
	return nil
}

// StartupSync publishes the current snapshot once at worker startup. It
// recovers from sync messages lost while the worker was down; an empty slot
// is not an error, the worker just waits for the first mutation.
func (w *SyncWorker) StartupSync(ctx context.Context) error {
	ledger, err := w.store.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "No ledger snapshot available on startup", "error", err)
		return nil
	}

	if err := w.publisher.PublishLedger(ctx, ledger); err != nil {
		return fmt.Errorf("startup publish: %w", err)
	}
	w.lastPublished = ledger.Version

	slog.InfoContext(ctx, "Startup sync completed",
		"year", ledger.Year,
		"version", ledger.Version)
	return nil
}
