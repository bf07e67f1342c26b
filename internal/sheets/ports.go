package sheets

import (
	"context"

	"financas/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerPublisher pushes the spreadsheet projection of a ledger snapshot
	// to an external sheet, replacing whatever was there before.
	LedgerPublisher interface {
		PublishLedger(ctx context.Context, l core.Ledger) error
	}
)
