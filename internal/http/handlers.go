package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"txdash/internal/core"
	"txdash/internal/export"
	applog "txdash/internal/log"
)

// fetch loads the collection for one request. On failure it writes the
// error response and returns ok=false.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request, op string, fields applog.LogFields) ([]core.Transaction, bool) {
	ctx := r.Context()
	start := time.Now()

	txs, err := s.source.Fetch(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			// Client went away; nobody is left to read a response.
			applog.FromContext(ctx).DebugContext(ctx, "Request cancelled during fetch", applog.FieldOperation, op)
			return nil, false
		}
		status, message, errorType := classifySourceError(err)
		fields[applog.FieldStatusCode] = status
		applog.NewStructuredLogger(applog.FromContext(ctx)).
			LogError(ctx, "Transaction fetch failed", err, op, errorType, fields)
		WriteError(w, status, message)
		return nil, false
	}

	applog.FromContext(ctx).DebugContext(ctx, "Transactions fetched",
		applog.FieldOperation, op,
		applog.FieldCount, len(txs),
		applog.FieldDuration, time.Since(start).Milliseconds())
	return txs, true
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, v any) {
	if err := WriteJSON(w, v); err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Response write failed", applog.FieldError, err)
	}
}

func (s *Server) logQuery(r *http.Request, op string, fields applog.LogFields, matched int) {
	applog.NewStructuredLogger(applog.FromContext(r.Context())).LogQuery(r.Context(), op, fields, matched)
}

// handleTransactions serves one page of month-filtered, searched transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())
	fields := applog.NewFields().WithQuery(q.Month, q.Search, q.Page, q.PerPage)

	txs, ok := s.fetch(w, r, applog.OpList, fields)
	if !ok {
		return
	}
	page := core.List(txs, q)
	s.logQuery(r, applog.OpList, fields, len(page.Transactions))
	s.respond(w, r, page)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	month := ParseMonthParam(r.URL.Query())
	fields := applog.NewFields()
	fields[applog.FieldMonth] = month

	txs, ok := s.fetch(w, r, applog.OpStatistics, fields)
	if !ok {
		return
	}
	matched := core.FilterByMonth(txs, month)
	s.logQuery(r, applog.OpStatistics, fields, len(matched))
	s.respond(w, r, core.ComputeStatistics(matched))
}

func (s *Server) handlePriceRanges(w http.ResponseWriter, r *http.Request) {
	month := ParseMonthParam(r.URL.Query())
	fields := applog.NewFields()
	fields[applog.FieldMonth] = month

	txs, ok := s.fetch(w, r, applog.OpPriceRanges, fields)
	if !ok {
		return
	}
	matched := core.FilterByMonth(txs, month)
	s.logQuery(r, applog.OpPriceRanges, fields, len(matched))
	s.respond(w, r, core.PriceRanges(matched))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	month := ParseMonthParam(r.URL.Query())
	fields := applog.NewFields()
	fields[applog.FieldMonth] = month

	txs, ok := s.fetch(w, r, applog.OpCategories, fields)
	if !ok {
		return
	}
	matched := core.FilterByMonth(txs, month)
	s.logQuery(r, applog.OpCategories, fields, len(matched))
	s.respond(w, r, core.Categories(matched))
}

// handleDashboard serves the three aggregate views of one month in a single response.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month := ParseMonthParam(r.URL.Query())
	fields := applog.NewFields()
	fields[applog.FieldMonth] = month

	txs, ok := s.fetch(w, r, applog.OpDashboard, fields)
	if !ok {
		return
	}
	d, err := core.Summarize(r.Context(), txs, month)
	if err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "Dashboard aggregation failed", err, applog.OpDashboard, applog.ErrorTypeInternal, fields)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.logQuery(r, applog.OpDashboard, fields, d.Statistics.SoldItems+d.Statistics.NotSoldItems)
	s.respond(w, r, d)
}

// handleExport streams every month-filtered, searched transaction as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q := ParseQuery(r.URL.Query())
	fields := applog.NewFields()
	fields[applog.FieldMonth] = q.Month
	if q.Search != "" {
		fields[applog.FieldSearch] = q.Search
	}

	txs, ok := s.fetch(w, r, applog.OpExport, fields)
	if !ok {
		return
	}
	matched := core.Search(core.FilterByMonth(txs, q.Month), q.Search)

	// Render fully before writing so an encoding failure can still become a 500.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, matched); err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "CSV export failed", err, applog.OpExport, applog.ErrorTypeInternal, fields)
		WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.logQuery(r, applog.OpExport, fields, len(matched))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(q.Month)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleRateLimited answers requests rejected by the rate limiter.
func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		applog.FieldPath, r.URL.Path)
	WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
}
