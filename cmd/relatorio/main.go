// relatorio renders an annual report from a ledger backup file on the
// terminal, without needing the server running.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"financas/internal/core"
)

type Params struct {
	File       string `descr:"Path to the backup JSON file" positional:"true"`
	Format     string `descr:"Output format" alts:"table,json" strict:"true" default:"table"`
	Categories bool   `descr:"Include the per-category annual totals" default:"true"`
}

func main() {
	boa.NewCmdT[Params]("relatorio").
		WithShort("Render an annual report from a ledger backup file").
		WithLong("Reads a backup JSON document exported by the financas server and prints monthly figures, annual totals and per-category breakdowns.").
		WithRunFunc(func(params *Params) {
			data, err := os.ReadFile(params.File)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
				os.Exit(1)
			}

			ledger, err := core.UnmarshalBackup(data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing backup: %v\n", err)
				os.Exit(1)
			}

			stats := core.ComputeStats(ledger)

			if params.Format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(stats); err != nil {
					fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
					os.Exit(1)
				}
				return
			}

			printReport(os.Stdout, ledger, stats, params.Categories)
		}).
		Run()
}

func printReport(w *os.File, ledger core.Ledger, stats core.DerivedStats, withCategories bool) {
	fmt.Fprintf(w, "Relatório anual %d\n\n", ledger.Year)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Mês", "Receita", "Despesas", "Saldo"})

	for _, m := range stats.Months {
		saldo := formatBRL(m.Balance)
		if m.Balance < 0 {
			saldo = text.FgRed.Sprint(saldo)
		}
		t.AppendRow(table.Row{m.MonthName, formatBRL(m.Income), formatBRL(m.Expenses), saldo})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{
		text.Bold.Sprint("Total"),
		text.Bold.Sprint(formatBRL(stats.TotalIncome)),
		text.Bold.Sprint(formatBRL(stats.TotalExpenses)),
		text.Bold.Sprint(formatBRL(stats.TotalBalance)),
	})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	fmt.Fprintf(w, "\nMelhor mês: %s\n", stats.BestMonth)

	if !withCategories {
		return
	}

	fmt.Fprintln(w)
	ct := table.NewWriter()
	ct.SetOutputMirror(w)
	ct.AppendHeader(table.Row{"Categoria", "Total Anual"})
	for _, c := range stats.CategoryTotals {
		ct.AppendRow(table.Row{string(c.Category), formatBRL(c.Total)})
	}
	ct.SetStyle(table.StyleRounded)
	ct.Style().Format.Header = text.FormatDefault
	ct.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	ct.Render()
}

func formatBRL(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
