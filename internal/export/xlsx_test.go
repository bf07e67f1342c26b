package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"financas/internal/core"
)

func TestWriteXLSXGrid(t *testing.T) {
	l := core.NewLedger(2026)
	l, _ = l.SetIncome(0, 4500)
	l, _ = l.SetExpense(0, core.CategoryHousing, 2400.567)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, l); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheet := fmt.Sprintf("Finanças %d", l.Year)
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		t.Fatalf("sheet %q not found (idx=%d, err=%v)", sheet, idx, err)
	}

	check := func(cell, want string) {
		t.Helper()
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Fatalf("cell %s = %q, want %q", cell, got, want)
		}
	}

	check("A1", "Categoria")
	check("B1", "Janeiro")
	check("N1", "Total Geral")
	check("A2", "RECEITA MENSAL")
	check("B2", "4500")
	// Housing is the fifth category in canonical order, row 7 of the grid.
	check("A7", string(core.CategoryHousing))
	check("B7", "2400.57")
	check("A11", "TOTAL DESPESAS")
	check("A12", "SALDO LÍQUIDO")
}
