package core

import (
	"errors"
	"testing"
)

func TestNewLedgerShape(t *testing.T) {
	l := NewLedger(2026)
	if l.Year != 2026 {
		t.Fatalf("year = %d, want 2026", l.Year)
	}
	for i, m := range l.Months {
		if m.MonthIndex != i {
			t.Fatalf("month %d has index %d", i, m.MonthIndex)
		}
		if m.MonthName != monthNames[i] {
			t.Fatalf("month %d name = %q, want %q", i, m.MonthName, monthNames[i])
		}
		if m.Income != 0 || m.TotalExpenses() != 0 {
			t.Fatalf("month %d not zeroed", i)
		}
	}
}

func TestSetIncome(t *testing.T) {
	l := NewLedger(2026)

	next, err := l.SetIncome(3, 1234.56)
	if err != nil {
		t.Fatalf("SetIncome: %v", err)
	}
	if next.Months[3].Income != 1234.56 {
		t.Fatalf("income = %v, want 1234.56", next.Months[3].Income)
	}
	if l.Months[3].Income != 0 {
		t.Fatalf("original snapshot mutated")
	}
	if next.Version != l.Version+1 {
		t.Fatalf("version = %d, want %d", next.Version, l.Version+1)
	}

	// Negative values are a deliberate escape hatch, stored as-is.
	next, err = next.SetIncome(3, -50)
	if err != nil {
		t.Fatalf("SetIncome negative: %v", err)
	}
	if next.Months[3].Income != -50 {
		t.Fatalf("income = %v, want -50", next.Months[3].Income)
	}

	for _, bad := range []int{-1, 12, 100} {
		if _, err := l.SetIncome(bad, 10); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("index %d: err = %v, want ErrOutOfRange", bad, err)
		}
	}
}

func TestSetExpense(t *testing.T) {
	l := NewLedger(2026)

	next, err := l.SetExpense(0, CategoryHousing, 2400)
	if err != nil {
		t.Fatalf("SetExpense: %v", err)
	}
	got, err := next.Months[0].Expense(CategoryHousing)
	if err != nil {
		t.Fatalf("Expense: %v", err)
	}
	if got != 2400 {
		t.Fatalf("expense = %v, want 2400", got)
	}
	if l.Months[0].TotalExpenses() != 0 {
		t.Fatalf("original snapshot mutated")
	}

	if _, err := l.SetExpense(0, Category("Nonexistent"), 1); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}
	if _, err := l.SetExpense(12, CategoryHousing, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
}

func TestCategorySetIsClosed(t *testing.T) {
	cats := Categories()
	if len(cats) != NumCategories {
		t.Fatalf("len(Categories()) = %d, want %d", len(cats), NumCategories)
	}
	for _, c := range cats {
		if !c.Valid() {
			t.Fatalf("category %q not valid", c)
		}
	}
	if Category("Viagens").Valid() {
		t.Fatalf("unknown category reported valid")
	}

	// Mutating the returned slice must not leak into the canonical order.
	cats[0] = Category("changed")
	if Categories()[0] != CategoryEssentialFood {
		t.Fatalf("canonical category order mutated through Categories()")
	}
}

func TestPaymentMethods(t *testing.T) {
	methods := PaymentMethods()
	if len(methods) != 5 {
		t.Fatalf("len(PaymentMethods()) = %d, want 5", len(methods))
	}
	if !MethodPix.Valid() {
		t.Fatalf("PIX should be valid")
	}
	if PaymentMethod("Cheque").Valid() {
		t.Fatalf("unknown method reported valid")
	}
}

func TestMonthName(t *testing.T) {
	cases := []struct {
		index int
		want  string
	}{
		{0, "Janeiro"},
		{11, "Dezembro"},
		{-1, ""},
		{12, ""},
	}
	for _, tc := range cases {
		if got := MonthName(tc.index); got != tc.want {
			t.Errorf("MonthName(%d) = %q, want %q", tc.index, got, tc.want)
		}
	}
}
