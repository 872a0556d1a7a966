package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"stockfeed/internal/aggregate"
	"stockfeed/internal/config"
	"stockfeed/internal/export"
	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

const (
	maxSymbols  = 1000
	dateLayout  = "2006-01-02"
	historyDays = 30
)

// service is the slice of *aggregate.Aggregator the handlers use.
type service interface {
	SearchStocks(ctx context.Context, query string) ([]provider.EnrichedStock, error)
	EnrichDetails(ctx context.Context, symbols []string) ([]provider.EnrichedStock, error)
	HistoryRange(ctx context.Context, symbol string, from, to time.Time) ([]provider.DailyBar, error)
	News(ctx context.Context, symbol string, limit int) ([]provider.NewsItem, error)
	Overview(ctx context.Context) (aggregate.Overview, error)
}

type handlers struct {
	svc       service
	newsLimit int
	logger    *slog.Logger
}

type stocksResponse struct {
	Stocks []provider.EnrichedStock `json:"stocks"`
}

type historyResponse struct {
	Symbol string              `json:"symbol"`
	From   string              `json:"from"`
	To     string              `json:"to"`
	Bars   []provider.DailyBar `json:"bars"`
}

type newsResponse struct {
	Symbol string              `json:"symbol"`
	News   []provider.NewsItem `json:"news"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.svc.SearchStocks(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stocksResponse{Stocks: stocks})
}

func (h *handlers) detailsGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("symbols")
	if strings.TrimSpace(q) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing symbols query param"})
		return
	}
	h.details(w, r, config.SplitCSV(q))
}

type detailsBody struct {
	Symbols []string `json:"symbols"`
}

func (h *handlers) detailsPost(w http.ResponseWriter, r *http.Request) {
	var b detailsBody
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if len(b.Symbols) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "symbols cannot be empty"})
		return
	}
	h.details(w, r, b.Symbols)
}

func (h *handlers) details(w http.ResponseWriter, r *http.Request, symbols []string) {
	if len(symbols) > maxSymbols {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "too many symbols (max 1000)"})
		return
	}
	stocks, err := h.svc.EnrichDetails(r.Context(), symbols)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stocksResponse{Stocks: stocks})
}

func (h *handlers) favorites(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if ov.Stocks == nil {
		ov.Stocks = []provider.EnrichedStock{}
	}
	writeJSON(w, http.StatusOK, ov)
}

// history serves bars as JSON by default, or as a csv/parquet download
// with ?format=. Missing bounds default to the last 30 days.
func (h *handlers) history(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	q := r.URL.Query()

	to := time.Now().UTC()
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}
	from := to.AddDate(0, 0, -historyDays)
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if from.Format(dateLayout) > to.Format(dateLayout) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "from must not be after to"})
		return
	}

	var ew export.Writer
	if f := q.Get("format"); f != "" && f != "json" {
		if ew = export.New(f); ew == nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "format must be json, csv or parquet"})
			return
		}
	}

	bars, err := h.svc.HistoryRange(r.Context(), symbol, from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if ew != nil {
		w.Header().Set("Content-Type", ew.ContentType())
		disposition := mime.FormatMediaType("attachment", map[string]string{"filename": symbol + "." + ew.Extension()})
		if disposition == "" {
			disposition = "attachment"
		}
		w.Header().Set("Content-Disposition", disposition)
		w.WriteHeader(http.StatusOK)
		if err := ew.Write(w, export.Rows(symbol, bars)); err != nil {
			h.logger.Warn("history export", "symbol", symbol, "err", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{
		Symbol: symbol,
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Bars:   bars,
	})
}

func (h *handlers) news(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")
	limit := h.newsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	items, err := h.svc.News(r.Context(), symbol, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{Symbol: symbol, News: items})
}

// writeError maps the error taxonomy onto an HTTP status. Upstream
// rejections are 502; transport trouble is 503.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, aggregate.ErrEmptySymbol) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	kind := httpx.Classify(err)
	status := http.StatusInternalServerError
	switch kind {
	case httpx.KindAuth, httpx.KindAPI, httpx.KindDecode:
		status = http.StatusBadGateway
	case httpx.KindRequest, httpx.KindCanceled:
		status = http.StatusServiceUnavailable
	}
	h.logger.Warn("request failed", "path", r.URL.Path, "kind", kind, "err", err)
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
