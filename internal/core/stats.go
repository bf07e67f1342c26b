package core

import "math"

type (
	// MonthStats carries the derived figures for one month.
	MonthStats struct {
		MonthIndex int     `json:"monthIndex"`
		MonthName  string  `json:"monthName"`
		Income     float64 `json:"income"`
		Expenses   float64 `json:"expenses"`
		Balance    float64 `json:"balance"`
	}

	// ChartPoint is one chart-ready sample per month. The name is the month
	// label truncated to three characters for axis labelling.
	ChartPoint struct {
		Name     string  `json:"name"`
		Receita  float64 `json:"receita"`
		Despesas float64 `json:"despesas"`
		Saldo    float64 `json:"saldo"`
	}

	// CategoryTotal is the annual total of one category.
	CategoryTotal struct {
		Category Category `json:"category"`
		Total    float64  `json:"total"`
	}

	// DerivedStats is fully recomputed from a ledger snapshot: it is never
	// mutated in place, only replaced wholesale. It is not persisted.
	DerivedStats struct {
		TotalIncome    float64         `json:"totalIncome"`
		TotalExpenses  float64         `json:"totalExpenses"`
		TotalBalance   float64         `json:"totalBalance"`
		BestMonth      string          `json:"bestMonth"`
		Months         []MonthStats    `json:"months"`
		Chart          []ChartPoint    `json:"chart"`
		CategoryTotals []CategoryTotal `json:"categoryTotals"`
	}
)

// ComputeStats derives all aggregates from a ledger snapshot. Pure and
// deterministic: the same snapshot always yields identical stats.
//
// Best month is the one with the strictly greatest balance; on ties the
// earlier index wins because the scan only replaces the incumbent on a
// strictly greater value.
func ComputeStats(l Ledger) DerivedStats {
	stats := DerivedStats{
		Months: make([]MonthStats, 0, MonthsPerYear),
		Chart:  make([]ChartPoint, 0, MonthsPerYear),
	}

	maxBalance := math.Inf(-1)
	for _, m := range l.Months {
		expenses := m.TotalExpenses()
		balance := m.Income - expenses

		stats.TotalIncome += m.Income
		stats.TotalExpenses += expenses

		if balance > maxBalance {
			maxBalance = balance
			stats.BestMonth = m.MonthName
		}

		stats.Months = append(stats.Months, MonthStats{
			MonthIndex: m.MonthIndex,
			MonthName:  m.MonthName,
			Income:     m.Income,
			Expenses:   expenses,
			Balance:    balance,
		})
		stats.Chart = append(stats.Chart, ChartPoint{
			Name:     truncateName(m.MonthName, 3),
			Receita:  m.Income,
			Despesas: expenses,
			Saldo:    balance,
		})
	}
	stats.TotalBalance = stats.TotalIncome - stats.TotalExpenses

	stats.CategoryTotals = make([]CategoryTotal, 0, NumCategories)
	for ci, c := range categories {
		var total float64
		for _, m := range l.Months {
			total += m.Expenses[ci]
		}
		stats.CategoryTotals = append(stats.CategoryTotals, CategoryTotal{Category: c, Total: total})
	}

	return stats
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
