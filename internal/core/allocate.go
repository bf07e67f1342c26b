package core

import "log/slog"

// ApplyTransaction spreads a purchase across consecutive months and returns
// the resulting snapshot.
//
// The per-month share is amount/installments with no rounding; rounding, if
// any, happens only at display or export time. This means the displayed
// installments may not sum exactly to the original amount after two-decimal
// formatting, which is accepted rather than patched by redistributing a
// remainder.
//
// Installments that would land past December are dropped: the ledger covers
// exactly one fiscal year and there is no carry into a next-year ledger.
// A start month outside the year entirely is an error, and the receiver is
// returned unchanged.
func (l Ledger) ApplyTransaction(tx TransactionInput) (Ledger, error) {
	if err := tx.Validate(); err != nil {
		return l, err
	}

	start := int(tx.Date.Month()) - 1
	if start < 0 || start >= MonthsPerYear {
		return l, ErrInvalidDate
	}
	ci, ok := categoryIndex(tx.Category)
	if !ok {
		return l, ErrInvalidCategory
	}

	share := tx.Amount / float64(tx.Installments)

	next := l
	next.Version++
	applied := 0
	for i := 0; i < tx.Installments; i++ {
		target := start + i
		if target >= MonthsPerYear {
			break
		}
		// Additive: accumulates onto whatever the cell already holds.
		next.Months[target].Expenses[ci] += share
		applied++
	}

	if dropped := tx.Installments - applied; dropped > 0 {
		slog.Debug("installments past december dropped",
			"category", string(tx.Category),
			"start_month", start,
			"installments", tx.Installments,
			"dropped", dropped,
			"dropped_amount", share*float64(dropped))
	}

	return next, nil
}
