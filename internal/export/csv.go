// Package export renders read-only spreadsheet projections of a ledger.
// Formatting here is presentation: values are rounded to two decimals with a
// decimal comma, while the ledger itself stays unrounded.
package export

import (
	"io"
	"strconv"
	"strings"

	"financas/internal/core"
)

// separator is what regional spreadsheet imports expect for PT-BR locales.
const separator = ";"

// utf8BOM makes common spreadsheet tools pick UTF-8 on import.
const utf8BOM = "\ufeff"

const (
	rowLabelIncome   = "RECEITA MENSAL"
	rowLabelExpenses = "TOTAL DESPESAS"
	rowLabelBalance  = "SALDO LÍQUIDO"
	headerFirstCell  = "Categoria"
	headerLastCell   = "Total Geral"
)

// WriteCSV writes the delimited-text projection of the ledger: a header row,
// the income row, one row per category, the total-expenses row and the
// net-balance row, each with twelve month columns plus a grand total.
func WriteCSV(w io.Writer, l core.Ledger) error {
	stats := core.ComputeStats(l)

	var b strings.Builder
	b.WriteString(utf8BOM)

	// Header
	header := make([]string, 0, core.MonthsPerYear+2)
	header = append(header, headerFirstCell)
	for _, m := range l.Months {
		header = append(header, m.MonthName)
	}
	header = append(header, headerLastCell)
	b.WriteString(strings.Join(header, separator))
	b.WriteByte('\n')

	// Income
	row := []string{rowLabelIncome}
	for _, m := range l.Months {
		row = append(row, formatAmount(m.Income))
	}
	row = append(row, formatAmount(stats.TotalIncome))
	b.WriteString(strings.Join(row, separator))
	b.WriteByte('\n')

	// One row per category, canonical order.
	for _, ct := range stats.CategoryTotals {
		row = row[:0]
		row = append(row, string(ct.Category))
		for _, m := range l.Months {
			v, err := m.Expense(ct.Category)
			if err != nil {
				return err
			}
			row = append(row, formatAmount(v))
		}
		row = append(row, formatAmount(ct.Total))
		b.WriteString(strings.Join(row, separator))
		b.WriteByte('\n')
	}

	// Totals
	row = row[:0]
	row = append(row, rowLabelExpenses)
	for _, ms := range stats.Months {
		row = append(row, formatAmount(ms.Expenses))
	}
	row = append(row, formatAmount(stats.TotalExpenses))
	b.WriteString(strings.Join(row, separator))
	b.WriteByte('\n')

	row = row[:0]
	row = append(row, rowLabelBalance)
	for _, ms := range stats.Months {
		row = append(row, formatAmount(ms.Balance))
	}
	row = append(row, formatAmount(stats.TotalBalance))
	b.WriteString(strings.Join(row, separator))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

// formatAmount renders two decimals with a comma separator ("1234,50").
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	return strings.Replace(s, ".", ",", 1)
}
