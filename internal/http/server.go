// Package http exposes the ledger over a JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"financas/internal/middleware/ratelimit"
	"financas/internal/middleware/security"
	"financas/internal/middleware/trace"
	"financas/internal/services"
)

type Server struct {
	http.Server
	ledger  *services.LedgerService
	advisor AdvisorFunc

	adviceLimiter *ratelimit.Limiter
	shutdownOnce  sync.Once
}

// AdvisorFunc adapts the advisor call into the server without binding the
// package to a concrete client.
type AdvisorFunc func(ctx context.Context, query string) string

// Options tunes the server beyond its mandatory dependencies.
type Options struct {
	AdviceRequestsPerMinute int
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, advisor AdvisorFunc, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		ledger:  ledger,
		advisor: advisor,
		adviceLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.AdviceRequestsPerMinute,
		}),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/api/ledger", s.handleLedger)
	mux.HandleFunc("/api/ledger/income", s.handleSetIncome)
	mux.HandleFunc("/api/ledger/expense", s.handleSetExpense)
	mux.HandleFunc("/api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/api/export/csv", s.handleExportCSV)
	mux.HandleFunc("/api/export/xlsx", s.handleExportXLSX)
	mux.HandleFunc("/api/backup", s.handleBackup)

	adviceLimit := s.adviceLimiter.Middleware(clientIP, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
	})
	mux.Handle("/api/advice", adviceLimit(http.HandlerFunc(s.handleAdvice)))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	tracer := trace.NewMiddleware(clientIP)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           tracer.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Shutdown stops the HTTP server and background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.adviceLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// clientIP extracts the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, "ok")
}
