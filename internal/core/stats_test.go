package core

import (
	"reflect"
	"testing"
)

func TestComputeStatsBalanceIdentity(t *testing.T) {
	l := DefaultLedger(2026)
	l, _ = l.SetExpense(0, CategoryHousing, 2400.50)
	l, _ = l.SetExpense(4, CategoryTransport, 310.25)
	l, _ = l.SetIncome(7, 5200)

	stats := ComputeStats(l)

	var balanceSum float64
	for i, ms := range stats.Months {
		m := l.Months[i]
		if !almostEqual(ms.Balance, m.Income-m.TotalExpenses()) {
			t.Fatalf("month %d balance identity broken: %v", i, ms.Balance)
		}
		balanceSum += ms.Balance
	}
	if !almostEqual(stats.TotalBalance, stats.TotalIncome-stats.TotalExpenses) {
		t.Fatalf("annual balance identity broken")
	}
	if !almostEqual(stats.TotalBalance, balanceSum) {
		t.Fatalf("total balance %v != sum of month balances %v", stats.TotalBalance, balanceSum)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	l := DefaultLedger(2026)
	l, _ = l.SetExpense(2, CategoryEntertainment, 123.45)

	a := ComputeStats(l)
	b := ComputeStats(l)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("stats differ between calls on the same snapshot")
	}
}

func TestComputeStatsBestMonthTieBreak(t *testing.T) {
	// Two tied maxima: the earlier month must win.
	l := NewLedger(2026)
	l, _ = l.SetIncome(3, 1000)
	l, _ = l.SetIncome(8, 1000)

	stats := ComputeStats(l)
	if stats.BestMonth != "Abril" {
		t.Fatalf("best month = %q, want Abril", stats.BestMonth)
	}
}

func TestComputeStatsJanuaryOverspendScenario(t *testing.T) {
	// Income 1000 everywhere, single January housing expense of 1200:
	// January balance -200, all others 1000, annual balance 10800, best
	// month February (first of the eleven tied months).
	l := NewLedger(2026)
	for i := 0; i < MonthsPerYear; i++ {
		l, _ = l.SetIncome(i, 1000)
	}
	l, _ = l.SetExpense(0, CategoryHousing, 1200)

	stats := ComputeStats(l)

	if !almostEqual(stats.Months[0].Balance, -200) {
		t.Fatalf("january balance = %v, want -200", stats.Months[0].Balance)
	}
	for i := 1; i < MonthsPerYear; i++ {
		if !almostEqual(stats.Months[i].Balance, 1000) {
			t.Fatalf("month %d balance = %v, want 1000", i, stats.Months[i].Balance)
		}
	}
	if !almostEqual(stats.TotalBalance, 10800) {
		t.Fatalf("total balance = %v, want 10800", stats.TotalBalance)
	}
	if stats.BestMonth != "Fevereiro" {
		t.Fatalf("best month = %q, want Fevereiro", stats.BestMonth)
	}
}

func TestComputeStatsChartSeries(t *testing.T) {
	l := NewLedger(2026)
	l, _ = l.SetIncome(2, 4500)
	l, _ = l.SetExpense(2, CategoryEssentialFood, 350)

	stats := ComputeStats(l)
	if len(stats.Chart) != MonthsPerYear {
		t.Fatalf("chart has %d points, want %d", len(stats.Chart), MonthsPerYear)
	}

	p := stats.Chart[2]
	if p.Name != "Mar" {
		t.Fatalf("chart name = %q, want Mar", p.Name)
	}
	if p.Receita != 4500 || !almostEqual(p.Despesas, 350) || !almostEqual(p.Saldo, 4150) {
		t.Fatalf("chart point = %+v", p)
	}

	// Truncation is rune-aware: "Março" must not split the ç byte sequence.
	if stats.Chart[0].Name != "Jan" || stats.Chart[11].Name != "Dez" {
		t.Fatalf("unexpected axis labels: %q %q", stats.Chart[0].Name, stats.Chart[11].Name)
	}
}

func TestComputeStatsCategoryTotals(t *testing.T) {
	l := NewLedger(2026)
	l, _ = l.SetExpense(0, CategoryTransport, 100)
	l, _ = l.SetExpense(5, CategoryTransport, 250)
	l, _ = l.SetExpense(5, CategoryHealth, 80)

	stats := ComputeStats(l)
	if len(stats.CategoryTotals) != NumCategories {
		t.Fatalf("category totals = %d entries, want %d", len(stats.CategoryTotals), NumCategories)
	}
	totals := make(map[Category]float64)
	for _, ct := range stats.CategoryTotals {
		totals[ct.Category] = ct.Total
	}
	if !almostEqual(totals[CategoryTransport], 350) {
		t.Fatalf("transport total = %v, want 350", totals[CategoryTransport])
	}
	if !almostEqual(totals[CategoryHealth], 80) {
		t.Fatalf("health total = %v, want 80", totals[CategoryHealth])
	}
	if totals[CategoryHousing] != 0 {
		t.Fatalf("housing total = %v, want 0", totals[CategoryHousing])
	}
}
