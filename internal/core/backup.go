package core

import (
	"encoding/json"
	"fmt"
)

// backupMonth mirrors one month in the portable backup document. Expenses are
// keyed by category label so the file stays readable and interchangeable.
type backupMonth struct {
	MonthIndex int                  `json:"monthIndex"`
	MonthName  string               `json:"monthName"`
	Income     float64              `json:"income"`
	Expenses   map[Category]float64 `json:"expenses"`
}

// backupFile is the whole document: exactly two top-level fields. Save and
// import use the same shape so round-trips are lossless.
type backupFile struct {
	Year   int           `json:"year"`
	Months []backupMonth `json:"months"`
}

// MarshalBackup serializes a ledger to the portable backup document.
func MarshalBackup(l Ledger) ([]byte, error) {
	doc := backupFile{Year: l.Year, Months: make([]backupMonth, 0, MonthsPerYear)}
	for _, m := range l.Months {
		expenses := make(map[Category]float64, NumCategories)
		for ci, c := range categories {
			expenses[c] = m.Expenses[ci]
		}
		doc.Months = append(doc.Months, backupMonth{
			MonthIndex: m.MonthIndex,
			MonthName:  m.MonthName,
			Income:     m.Income,
			Expenses:   expenses,
		})
	}
	return json.Marshal(doc)
}

// UnmarshalBackup parses and validates a backup document. Any structural
// problem fails with ErrValidation and no partial ledger is produced: callers
// keep their current state untouched on error.
//
// Month names are recomputed from the index rather than trusted, so an edited
// file cannot desynchronize label and slot. Expense keys must belong to the
// closed category set; missing keys default to zero.
func UnmarshalBackup(data []byte) (Ledger, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Ledger{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	yearRaw, ok := raw["year"]
	if !ok {
		return Ledger{}, fmt.Errorf("%w: missing year", ErrValidation)
	}
	monthsRaw, ok := raw["months"]
	if !ok {
		return Ledger{}, fmt.Errorf("%w: missing months", ErrValidation)
	}

	var year int
	if err := json.Unmarshal(yearRaw, &year); err != nil {
		return Ledger{}, fmt.Errorf("%w: year is not a number", ErrValidation)
	}
	var months []backupMonth
	if err := json.Unmarshal(monthsRaw, &months); err != nil {
		return Ledger{}, fmt.Errorf("%w: months is not an array", ErrValidation)
	}
	if len(months) != MonthsPerYear {
		return Ledger{}, fmt.Errorf("%w: expected %d months, got %d", ErrValidation, MonthsPerYear, len(months))
	}

	l := NewLedger(year)
	for i, bm := range months {
		if bm.MonthIndex != i {
			return Ledger{}, fmt.Errorf("%w: month %d has index %d", ErrValidation, i, bm.MonthIndex)
		}
		l.Months[i].Income = bm.Income
		for c, v := range bm.Expenses {
			ci, ok := categoryIndex(c)
			if !ok {
				return Ledger{}, fmt.Errorf("%w: unknown category %q", ErrValidation, string(c))
			}
			l.Months[i].Expenses[ci] = v
		}
	}
	return l, nil
}
