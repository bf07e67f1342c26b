package sheets

import (
	"math"

	"financas/internal/core"
)

// Grid renders the ledger as the rows pushed to a sheet: header, income row,
// one row per category, total expenses and net balance. The same fixed order
// as the CSV export, with numeric cells rounded to two decimals.
func Grid(l core.Ledger) [][]interface{} {
	stats := core.ComputeStats(l)
	rows := make([][]interface{}, 0, core.NumCategories+4)

	header := make([]interface{}, 0, core.MonthsPerYear+2)
	header = append(header, "Categoria")
	for _, m := range l.Months {
		header = append(header, m.MonthName)
	}
	header = append(header, "Total Geral")
	rows = append(rows, header)

	income := make([]interface{}, 0, core.MonthsPerYear+2)
	income = append(income, "RECEITA MENSAL")
	for _, ms := range stats.Months {
		income = append(income, round2(ms.Income))
	}
	income = append(income, round2(stats.TotalIncome))
	rows = append(rows, income)

	for _, ct := range stats.CategoryTotals {
		row := make([]interface{}, 0, core.MonthsPerYear+2)
		row = append(row, string(ct.Category))
		for _, m := range l.Months {
			v, _ := m.Expense(ct.Category)
			row = append(row, round2(v))
		}
		row = append(row, round2(ct.Total))
		rows = append(rows, row)
	}

	expenses := make([]interface{}, 0, core.MonthsPerYear+2)
	expenses = append(expenses, "TOTAL DESPESAS")
	for _, ms := range stats.Months {
		expenses = append(expenses, round2(ms.Expenses))
	}
	expenses = append(expenses, round2(stats.TotalExpenses))
	rows = append(rows, expenses)

	balance := make([]interface{}, 0, core.MonthsPerYear+2)
	balance = append(balance, "SALDO LÍQUIDO")
	for _, ms := range stats.Months {
		balance = append(balance, round2(ms.Balance))
	}
	balance = append(balance, round2(stats.TotalBalance))
	rows = append(rows, balance)

	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
