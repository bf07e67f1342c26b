package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"financas/internal/core"
)

type fakeGenerator struct {
	gotSystem string
	gotQuery  string
	reply     string
	err       error
}

func (f *fakeGenerator) Generate(_ context.Context, systemInstruction, query string) (string, error) {
	f.gotSystem = systemInstruction
	f.gotQuery = query
	return f.reply, f.err
}

func TestAskMissingKey(t *testing.T) {
	a := New("", "gemini-2.5-flash")
	got := a.Ask(context.Background(), core.DefaultLedger(2026), "Onde posso economizar?")
	if got != MsgMissingKey {
		t.Fatalf("Ask = %q, want missing-key message", got)
	}
}

func TestAskServiceError(t *testing.T) {
	a := newWithGenerator(&fakeGenerator{err: errors.New("boom")})
	got := a.Ask(context.Background(), core.DefaultLedger(2026), "pergunta")
	if got != MsgServiceError {
		t.Fatalf("Ask = %q, want service-error message", got)
	}
}

func TestAskEmptyResponse(t *testing.T) {
	a := newWithGenerator(&fakeGenerator{reply: "  \n"})
	got := a.Ask(context.Background(), core.DefaultLedger(2026), "pergunta")
	if got != MsgEmptyResponse {
		t.Fatalf("Ask = %q, want empty-response message", got)
	}
}

func TestAskPassesSummaryAndQuery(t *testing.T) {
	fake := &fakeGenerator{reply: "Corte gastos com entretenimento."}
	a := newWithGenerator(fake)

	l := core.NewLedger(2026)
	l, _ = l.SetIncome(0, 4500)
	l, _ = l.SetExpense(0, core.CategoryHousing, 2400)

	got := a.Ask(context.Background(), l, "Onde estou gastando demais?")
	if got != fake.reply {
		t.Fatalf("Ask = %q, want generator reply", got)
	}
	if fake.gotQuery != "Onde estou gastando demais?" {
		t.Fatalf("query = %q", fake.gotQuery)
	}
	for _, want := range []string{
		"ano de 2026",
		"Janeiro: Receita R$4500.00, Despesas R$2400.00, Saldo R$2100.00",
		"Moradia: Total Anual R$2400.00",
	} {
		if !strings.Contains(fake.gotSystem, want) {
			t.Fatalf("system instruction missing %q:\n%s", want, fake.gotSystem)
		}
	}
}
