// Package memory is an in-process LedgerPublisher for runs without a Google
// Sheets target, and the test double for the sync pipeline.
package memory

import (
	"context"
	"sync"

	"financas/internal/core"
	ports "financas/internal/sheets"
)

type Publisher struct {
	mu       sync.Mutex
	grid     [][]interface{}
	versions []int64
}

var _ ports.LedgerPublisher = (*Publisher)(nil)

func New() *Publisher {
	return &Publisher{}
}

// PublishLedger stores the rendered grid, replacing the previous one.
func (p *Publisher) PublishLedger(_ context.Context, l core.Ledger) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grid = ports.Grid(l)
	p.versions = append(p.versions, l.Version)
	return nil
}

// Grid returns the last published grid.
func (p *Publisher) Grid() [][]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grid
}

// PublishedVersions returns the snapshot versions published so far, in order.
func (p *Publisher) PublishedVersions() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]int64, len(p.versions))
	copy(out, p.versions)
	return out
}
