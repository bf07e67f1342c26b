package export

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"financas/internal/core"
)

// WriteXLSX writes the same grid as the CSV projection as a spreadsheet
// workbook, with numeric cells instead of locale-formatted strings.
func WriteXLSX(w io.Writer, l core.Ledger) error {
	stats := core.ComputeStats(l)

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Finanças %d", l.Year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	setRow := func(rowIdx int, label string, values []float64, total float64) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return err
		}
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+2, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, round2(v)); err != nil {
				return err
			}
		}
		cell, err = excelize.CoordinatesToCellName(len(values)+2, rowIdx)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, round2(total))
	}

	// Header
	if err := f.SetCellValue(sheet, "A1", headerFirstCell); err != nil {
		return err
	}
	for i, m := range l.Months {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, m.MonthName); err != nil {
			return err
		}
	}
	lastCell, err := excelize.CoordinatesToCellName(core.MonthsPerYear+2, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, lastCell, headerLastCell); err != nil {
		return err
	}

	incomes := make([]float64, 0, core.MonthsPerYear)
	expenses := make([]float64, 0, core.MonthsPerYear)
	balances := make([]float64, 0, core.MonthsPerYear)
	for _, ms := range stats.Months {
		incomes = append(incomes, ms.Income)
		expenses = append(expenses, ms.Expenses)
		balances = append(balances, ms.Balance)
	}

	rowIdx := 2
	if err := setRow(rowIdx, rowLabelIncome, incomes, stats.TotalIncome); err != nil {
		return fmt.Errorf("income row: %w", err)
	}
	rowIdx++

	for _, ct := range stats.CategoryTotals {
		values := make([]float64, 0, core.MonthsPerYear)
		for _, m := range l.Months {
			v, err := m.Expense(ct.Category)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		if err := setRow(rowIdx, string(ct.Category), values, ct.Total); err != nil {
			return fmt.Errorf("category row %q: %w", ct.Category, err)
		}
		rowIdx++
	}

	if err := setRow(rowIdx, rowLabelExpenses, expenses, stats.TotalExpenses); err != nil {
		return fmt.Errorf("expenses row: %w", err)
	}
	rowIdx++
	if err := setRow(rowIdx, rowLabelBalance, balances, stats.TotalBalance); err != nil {
		return fmt.Errorf("balance row: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
