// Package services orchestrates ledger operations: every successful mutation
// swaps the in-memory snapshot, flushes it to storage, and notifies the sync
// pipeline.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"financas/internal/cache"
	"financas/internal/core"
	"financas/internal/storage"
)

// Store persists the single ledger slot.
type Store interface {
	Save(ctx context.Context, l core.Ledger) error
	Load(ctx context.Context) (core.Ledger, error)
}

// SyncPublisher notifies the sync worker that a new snapshot was persisted.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, year int, version int64) error
}

// LedgerService owns the process-wide ledger handle. The snapshot behind the
// mutex is immutable; readers get a copy and mutators replace it wholesale,
// so a stats computation never observes a half-applied edit.
type LedgerService struct {
	mu        sync.RWMutex
	ledger    core.Ledger
	store     Store
	publisher SyncPublisher // optional
	stats     *cache.Cache[core.DerivedStats]
}

// NewLedgerService loads the persisted ledger, falling back to the generated
// default when the slot is empty or unreadable. The fallback is persisted
// immediately so the slot is populated from first startup on.
func NewLedgerService(ctx context.Context, year int, store Store, publisher SyncPublisher, cacheTTL time.Duration) (*LedgerService, error) {
	s := &LedgerService{
		store:     store,
		publisher: publisher,
		stats:     cache.New[core.DerivedStats](4, cacheTTL),
	}

	l, err := store.Load(ctx)
	switch {
	case err == nil:
		s.ledger = l
	case errors.Is(err, storage.ErrNotFound):
		slog.InfoContext(ctx, "No persisted ledger, generating default",
			"year", year,
			"component", "ledger",
			"operation", "load")
		s.ledger = core.DefaultLedger(year)
		if err := store.Save(ctx, s.ledger); err != nil {
			return nil, fmt.Errorf("persist default ledger: %w", err)
		}
	default:
		// An unreadable slot is recoverable: start from the default rather
		// than refusing to boot, but keep the noise in the log.
		slog.ErrorContext(ctx, "Failed to load persisted ledger, using default",
			"error", err,
			"year", year,
			"component", "ledger",
			"operation", "load")
		s.ledger = core.DefaultLedger(year)
		if err := store.Save(ctx, s.ledger); err != nil {
			return nil, fmt.Errorf("persist default ledger: %w", err)
		}
	}

	return s, nil
}

// Snapshot returns the current ledger.
func (s *LedgerService) Snapshot() core.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// Stats returns the derived statistics for the current snapshot, memoized by
// snapshot version.
func (s *LedgerService) Stats() core.DerivedStats {
	s.mu.RLock()
	l := s.ledger
	s.mu.RUnlock()

	if cached, ok := s.stats.Get(l.Version); ok {
		return cached
	}
	stats := core.ComputeStats(l)
	s.stats.Set(l.Version, stats)
	return stats
}

// SetIncome replaces one month's income.
func (s *LedgerService) SetIncome(ctx context.Context, monthIndex int, amount float64) (core.Ledger, error) {
	return s.mutate(ctx, "set_income", func(l core.Ledger) (core.Ledger, error) {
		return l.SetIncome(monthIndex, amount)
	})
}

// SetExpense replaces one expense cell.
func (s *LedgerService) SetExpense(ctx context.Context, monthIndex int, c core.Category, amount float64) (core.Ledger, error) {
	return s.mutate(ctx, "set_expense", func(l core.Ledger) (core.Ledger, error) {
		return l.SetExpense(monthIndex, c, amount)
	})
}

// AddTransaction applies an installment purchase.
func (s *LedgerService) AddTransaction(ctx context.Context, tx core.TransactionInput) (core.Ledger, error) {
	return s.mutate(ctx, "apply_transaction", func(l core.Ledger) (core.Ledger, error) {
		return l.ApplyTransaction(tx)
	})
}

// ImportBackup replaces the whole ledger with a validated backup document.
// On any validation failure the current ledger stays untouched.
func (s *LedgerService) ImportBackup(ctx context.Context, data []byte) (core.Ledger, error) {
	imported, err := core.UnmarshalBackup(data)
	if err != nil {
		return core.Ledger{}, err
	}
	return s.mutate(ctx, "import", func(l core.Ledger) (core.Ledger, error) {
		// Continue the version sequence of the ledger being replaced.
		imported.Version = l.Version + 1
		return imported, nil
	})
}

// ExportBackup serializes the current snapshot to the portable document.
func (s *LedgerService) ExportBackup() ([]byte, error) {
	return core.MarshalBackup(s.Snapshot())
}

// mutate applies a pure ledger operation, persists the result, then swaps the
// in-memory snapshot. Storage failure aborts the whole mutation, so memory
// and disk never diverge; only the sync notification is best-effort.
func (s *LedgerService) mutate(ctx context.Context, op string, apply func(core.Ledger) (core.Ledger, error)) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := apply(s.ledger)
	if err != nil {
		return core.Ledger{}, err
	}

	if err := s.store.Save(ctx, next); err != nil {
		return core.Ledger{}, fmt.Errorf("persist ledger: %w", err)
	}
	s.ledger = next

	if s.publisher != nil {
		if err := s.publisher.PublishLedgerSync(ctx, next.Year, next.Version); err != nil {
			// The mutation already succeeded; a lost sync message only delays
			// the external sheet.
			slog.ErrorContext(ctx, "Failed to publish ledger sync message",
				"error", err,
				"version", next.Version,
				"component", "ledger",
				"operation", op)
		}
	}

	slog.InfoContext(ctx, "Ledger updated",
		"version", next.Version,
		"component", "ledger",
		"operation", op)
	return next, nil
}
