// Package advisor is the boundary to the external advice service. It takes a
// ledger snapshot plus a free-text question and returns prose. Failures are
// recovered into fixed user-facing messages; nothing here ever reaches the
// caller as an error and nothing here touches the ledger.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"financas/internal/core"
)

// User-facing messages. The advisory surface speaks the application's
// language, not Go error strings.
const (
	MsgMissingKey    = "Chave de API ausente. Configure GEMINI_API_KEY."
	MsgServiceError  = "Ocorreu um erro ao consultar o assistente financeiro."
	MsgEmptyResponse = "Não consegui gerar uma análise no momento."
)

// generator abstracts the text-generation call so the adapter is testable
// without network access.
type generator interface {
	Generate(ctx context.Context, systemInstruction, query string) (string, error)
}

type Advisor struct {
	gen generator
}

// New creates an advisor backed by the Gemini API. An empty API key yields an
// advisor that answers every question with the missing-key message.
func New(apiKey, model string) *Advisor {
	if apiKey == "" {
		return &Advisor{}
	}
	return &Advisor{gen: &geminiGenerator{apiKey: apiKey, model: model}}
}

// newWithGenerator is the test seam.
func newWithGenerator(gen generator) *Advisor {
	return &Advisor{gen: gen}
}

// Ask sends the ledger summary and the question to the advice service and
// returns prose. It never returns an error: failures map to fixed messages
// and are logged.
func (a *Advisor) Ask(ctx context.Context, l core.Ledger, query string) string {
	if a.gen == nil {
		return MsgMissingKey
	}

	text, err := a.gen.Generate(ctx, systemInstruction(l), query)
	if err != nil {
		slog.ErrorContext(ctx, "Advice service call failed",
			"error", err,
			"component", "advisor",
			"operation", "advice")
		return MsgServiceError
	}
	if strings.TrimSpace(text) == "" {
		return MsgEmptyResponse
	}
	return text
}

// systemInstruction renders the ledger as the PT-BR context block the advice
// model is primed with: one line per month plus annual category totals.
func systemInstruction(l core.Ledger) string {
	stats := core.ComputeStats(l)

	var monthly strings.Builder
	for _, ms := range stats.Months {
		fmt.Fprintf(&monthly, "%s: Receita R$%.2f, Despesas R$%.2f, Saldo R$%.2f\n",
			ms.MonthName, ms.Income, ms.Expenses, ms.Balance)
	}

	var byCategory strings.Builder
	for _, ct := range stats.CategoryTotals {
		fmt.Fprintf(&byCategory, "%s: Total Anual R$%.2f\n", ct.Category, ct.Total)
	}

	return fmt.Sprintf(`Você é um consultor financeiro especialista e perspicaz.
Você está analisando os dados financeiros de um usuário para o ano de %d.

Contexto dos Dados:
%s
Totais por Categoria:
%s
Responda de forma concisa, profissional e direta. Use Markdown para formatar a resposta.
Se o usuário perguntar sobre projeções, use os dados fornecidos para extrapolar tendências.
Foque em "Saldos" (Savings) e onde cortar gastos excessivos.`,
		l.Year, monthly.String(), byCategory.String())
}
