package http

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"financas/internal/core"
	"financas/internal/export"
)

// maxBodyBytes bounds request bodies; backup documents are the largest
// payload and stay well under this.
const maxBodyBytes = 1 << 20

type monthResponse struct {
	MonthIndex    int                       `json:"monthIndex"`
	MonthName     string                    `json:"monthName"`
	Income        float64                   `json:"income"`
	Expenses      map[core.Category]float64 `json:"expenses"`
	TotalExpenses float64                   `json:"totalExpenses"`
	Balance       float64                   `json:"balance"`
}

type ledgerResponse struct {
	Year    int             `json:"year"`
	Version int64           `json:"version"`
	Months  []monthResponse `json:"months"`
}

func toLedgerResponse(l core.Ledger) ledgerResponse {
	resp := ledgerResponse{
		Year:    l.Year,
		Version: l.Version,
		Months:  make([]monthResponse, 0, core.MonthsPerYear),
	}
	for _, m := range l.Months {
		expenses := make(map[core.Category]float64, core.NumCategories)
		for _, c := range core.Categories() {
			v, _ := m.Expense(c)
			expenses[c] = v
		}
		resp.Months = append(resp.Months, monthResponse{
			MonthIndex:    m.MonthIndex,
			MonthName:     m.MonthName,
			Income:        m.Income,
			Expenses:      expenses,
			TotalExpenses: m.TotalExpenses(),
			Balance:       m.Balance(),
		})
	}
	return resp
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(s.ledger.Snapshot()))
}

type setIncomeRequest struct {
	MonthIndex int     `json:"monthIndex"`
	Amount     float64 `json:"amount"`
}

func (s *Server) handleSetIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req setIncomeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	next, err := s.ledger.SetIncome(r.Context(), req.MonthIndex, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(next))
}

type setExpenseRequest struct {
	MonthIndex int           `json:"monthIndex"`
	Category   core.Category `json:"category"`
	Amount     float64       `json:"amount"`
}

func (s *Server) handleSetExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req setExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	next, err := s.ledger.SetExpense(r.Context(), req.MonthIndex, req.Category, req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(next))
}

type transactionRequest struct {
	Description   string             `json:"description"`
	Amount        float64            `json:"amount"`
	Category      core.Category      `json:"category"`
	Date          string             `json:"date"`
	PaymentMethod core.PaymentMethod `json:"paymentMethod"`
	Installments  int                `json:"installments"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", req.Date))
		return
	}

	next, err := s.ledger.AddTransaction(r.Context(), core.TransactionInput{
		Description:  strings.TrimSpace(req.Description),
		Amount:       req.Amount,
		Category:     req.Category,
		Date:         date,
		Method:       req.PaymentMethod,
		Installments: req.Installments,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLedgerResponse(next))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, s.ledger.Stats())
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	l := s.ledger.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, l); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err, "version", l.Version)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=financas_%d.csv", l.Year))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	l := s.ledger.Snapshot()
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, l); err != nil {
		slog.ErrorContext(r.Context(), "XLSX export failed", "error", err, "version", l.Version)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=financas_%d.xlsx", l.Year))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleBackupExport(w, r)
	case http.MethodPost:
		s.handleBackupImport(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleBackupExport(w http.ResponseWriter, r *http.Request) {
	payload, err := s.ledger.ExportBackup()
	if err != nil {
		slog.ErrorContext(r.Context(), "Backup export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	l := s.ledger.Snapshot()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=backup_financeiro_%d.json", l.Year))
	_, _ = w.Write(payload)
}

func (s *Server) handleBackupImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}

	next, err := s.ledger.ImportBackup(r.Context(), body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(next))
}

type adviceRequest struct {
	Query string `json:"query"`
}

type adviceResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req adviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	writeJSON(w, http.StatusOK, adviceResponse{Answer: s.advisor(r.Context(), req.Query)})
}
