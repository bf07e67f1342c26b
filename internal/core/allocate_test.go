package core

import (
	"errors"
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestApplyTransactionSpreadsAcrossMonths(t *testing.T) {
	l := NewLedger(2026)

	tx := TransactionInput{
		Description:  "notebook",
		Amount:       1200,
		Category:     CategoryStudies,
		Date:         time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		Method:       MethodCreditCard,
		Installments: 4,
	}
	next, err := l.ApplyTransaction(tx)
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}

	// Months 2..5 each get one share of 300.
	var applied float64
	for i, m := range next.Months {
		got, _ := m.Expense(CategoryStudies)
		applied += got
		if i >= 2 && i <= 5 {
			if !almostEqual(got, 300) {
				t.Fatalf("month %d share = %v, want 300", i, got)
			}
		} else if got != 0 {
			t.Fatalf("month %d unexpectedly affected: %v", i, got)
		}
	}
	if !almostEqual(applied, tx.Amount) {
		t.Fatalf("applied total = %v, want %v", applied, tx.Amount)
	}

	// All other categories stay untouched.
	for i, m := range next.Months {
		for _, c := range Categories() {
			if c == CategoryStudies {
				continue
			}
			if v, _ := m.Expense(c); v != 0 {
				t.Fatalf("month %d category %q affected: %v", i, c, v)
			}
		}
	}

	if l.Months[2].TotalExpenses() != 0 {
		t.Fatalf("original snapshot mutated")
	}
}

func TestApplyTransactionIsAdditive(t *testing.T) {
	l := NewLedger(2026)
	l, err := l.SetExpense(0, CategoryTransport, 100)
	if err != nil {
		t.Fatalf("SetExpense: %v", err)
	}

	tx := TransactionInput{
		Amount:       50,
		Category:     CategoryTransport,
		Date:         time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		Installments: 1,
	}
	next, err := l.ApplyTransaction(tx)
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}
	got, _ := next.Months[0].Expense(CategoryTransport)
	if !almostEqual(got, 150) {
		t.Fatalf("expense = %v, want 150 (accumulated, not overwritten)", got)
	}
}

func TestApplyTransactionDropsOverflowInstallments(t *testing.T) {
	l := NewLedger(2026)

	// Starting in November with 5 installments: only Nov and Dec apply, the
	// other three shares are dropped, never carried into a next year.
	tx := TransactionInput{
		Amount:       500,
		Category:     CategoryHealth,
		Date:         time.Date(2026, time.November, 20, 0, 0, 0, 0, time.UTC),
		Installments: 5,
	}
	next, err := l.ApplyTransaction(tx)
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}

	var total float64
	for _, m := range next.Months {
		v, _ := m.Expense(CategoryHealth)
		total += v
	}
	if want := 2.0 / 5.0 * 500; !almostEqual(total, want) {
		t.Fatalf("applied total = %v, want %v", total, want)
	}
	for i := 0; i < 10; i++ {
		if v, _ := next.Months[i].Expense(CategoryHealth); v != 0 {
			t.Fatalf("month %d unexpectedly affected", i)
		}
	}
}

func TestApplyTransactionNovemberScenario(t *testing.T) {
	// Transaction{300, Transport, 2026-11-15, 4 installments}: Nov and Dec
	// each get +75, the remaining 150 is dropped.
	l := NewLedger(2026)
	next, err := l.ApplyTransaction(TransactionInput{
		Amount:       300,
		Category:     CategoryTransport,
		Date:         time.Date(2026, time.November, 15, 0, 0, 0, 0, time.UTC),
		Method:       MethodPix,
		Installments: 4,
	})
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}

	for _, idx := range []int{10, 11} {
		v, _ := next.Months[idx].Expense(CategoryTransport)
		if !almostEqual(v, 75) {
			t.Fatalf("month %d = %v, want 75", idx, v)
		}
	}
	for i := 0; i < 10; i++ {
		if next.Months[i].TotalExpenses() != 0 {
			t.Fatalf("month %d unexpectedly affected", i)
		}
	}
}

func TestApplyTransactionValidation(t *testing.T) {
	l := NewLedger(2026)
	date := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		tx   TransactionInput
		want error
	}{
		{"zero installments", TransactionInput{Amount: 10, Category: CategoryHousing, Date: date, Installments: 0}, ErrInvalidInstallments},
		{"unknown category", TransactionInput{Amount: 10, Category: "Viagens", Date: date, Installments: 1}, ErrInvalidCategory},
		{"zero amount", TransactionInput{Amount: 0, Category: CategoryHousing, Date: date, Installments: 1}, ErrInvalidAmount},
		{"negative amount", TransactionInput{Amount: -5, Category: CategoryHousing, Date: date, Installments: 1}, ErrInvalidAmount},
		{"nan amount", TransactionInput{Amount: math.NaN(), Category: CategoryHousing, Date: date, Installments: 1}, ErrInvalidAmount},
		{"zero date", TransactionInput{Amount: 10, Category: CategoryHousing, Installments: 1}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := l.ApplyTransaction(tc.tx)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			if next.Version != l.Version {
				t.Fatalf("failed transaction produced a new snapshot")
			}
		})
	}
}

func TestApplyTransactionUnroundedShares(t *testing.T) {
	// 100 over 3 installments: each share is the exact division, not a
	// rounded figure. The three shares still sum to the amount.
	l := NewLedger(2026)
	next, err := l.ApplyTransaction(TransactionInput{
		Amount:       100,
		Category:     CategoryPersonal,
		Date:         time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		Installments: 3,
	})
	if err != nil {
		t.Fatalf("ApplyTransaction: %v", err)
	}

	share, _ := next.Months[0].Expense(CategoryPersonal)
	if !almostEqual(share, 100.0/3.0) {
		t.Fatalf("share = %v, want %v", share, 100.0/3.0)
	}
	var total float64
	for _, m := range next.Months {
		v, _ := m.Expense(CategoryPersonal)
		total += v
	}
	if !almostEqual(total, 100) {
		t.Fatalf("total = %v, want 100", total)
	}
}
