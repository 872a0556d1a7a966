package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stockfeed/internal/aggregate"
	"stockfeed/internal/httpx"
	"stockfeed/internal/provider"
)

type fakeService struct {
	stocks   []provider.EnrichedStock
	bars     []provider.DailyBar
	news     []provider.NewsItem
	overview aggregate.Overview
	err      error

	gotQuery   string
	gotSymbols []string
	gotFrom    time.Time
	gotTo      time.Time
	gotLimit   int
}

func (f *fakeService) SearchStocks(_ context.Context, q string) ([]provider.EnrichedStock, error) {
	f.gotQuery = q
	return f.stocks, f.err
}

func (f *fakeService) EnrichDetails(_ context.Context, symbols []string) ([]provider.EnrichedStock, error) {
	f.gotSymbols = symbols
	return f.stocks, f.err
}

func (f *fakeService) HistoryRange(_ context.Context, symbol string, from, to time.Time) ([]provider.DailyBar, error) {
	f.gotSymbols = []string{symbol}
	f.gotFrom, f.gotTo = from, to
	return f.bars, f.err
}

func (f *fakeService) News(_ context.Context, symbol string, limit int) ([]provider.NewsItem, error) {
	f.gotSymbols = []string{symbol}
	f.gotLimit = limit
	return f.news, f.err
}

func (f *fakeService) Overview(context.Context) (aggregate.Overview, error) {
	return f.overview, f.err
}

func ptr(v float64) *float64 { return &v }

func serve(t *testing.T, svc service, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rr := httptest.NewRecorder()
	newHandler(svc, 10, logger).ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeService{}, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	_, err := uuid.Parse(rr.Header().Get(requestIDHeader))
	require.NoError(t, err)
}

func TestRequestIDIsEchoed(t *testing.T) {
	t.Parallel()

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)

	rr := serve(t, &fakeService{}, req)
	require.Equal(t, id, rr.Header().Get(requestIDHeader))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	svc := &fakeService{stocks: []provider.EnrichedStock{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: ptr(155), PriceChange: ptr(5), PriceChangePercent: ptr(0.0333)},
		{Symbol: "APLE", CompanyName: "Apple Hospitality"},
	}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/search?q=apple", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "apple", svc.gotQuery)
	require.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	resp := decode[stocksResponse](t, rr)
	require.Len(t, resp.Stocks, 2)
	require.Equal(t, 155.0, *resp.Stocks[0].CurrentPrice)
	require.Nil(t, resp.Stocks[1].CurrentPrice)
}

func TestSearch_UpstreamErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{name: "auth", err: fmt.Errorf("search: %w", httpx.ErrUnauthorized), status: http.StatusBadGateway, kind: httpx.KindAuth},
		{name: "api", err: &httpx.APIError{StatusCode: 429, Message: "slow down"}, status: http.StatusBadGateway, kind: httpx.KindAPI},
		{name: "request", err: &httpx.RequestError{Err: context.DeadlineExceeded}, status: http.StatusServiceUnavailable, kind: httpx.KindRequest},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, kind: httpx.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := serve(t, &fakeService{err: tt.err}, httptest.NewRequest(http.MethodGet, "/api/search?q=apple", nil))
			require.Equal(t, tt.status, rr.Code)
			resp := decode[errorResponse](t, rr)
			require.Equal(t, tt.kind, resp.Kind)
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestDetails_Get(t *testing.T) {
	t.Parallel()

	svc := &fakeService{stocks: []provider.EnrichedStock{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", CurrentPrice: ptr(1), PriceChange: ptr(0), PriceChangePercent: ptr(0)},
		{Symbol: "ZZZZINVALID", CompanyName: aggregate.LookupFailedName},
	}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/details?symbols=AAPL,%20ZZZZINVALID,", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"AAPL", "ZZZZINVALID"}, svc.gotSymbols)
	require.Len(t, decode[stocksResponse](t, rr).Stocks, 2)
}

func TestDetails_Post(t *testing.T) {
	t.Parallel()

	svc := &fakeService{stocks: []provider.EnrichedStock{}}
	req := httptest.NewRequest(http.MethodPost, "/api/details", strings.NewReader(`{"symbols":["MSFT","TSLA"]}`))

	rr := serve(t, svc, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"MSFT", "TSLA"}, svc.gotSymbols)
}

func TestDetails_BadRequests(t *testing.T) {
	t.Parallel()

	tooMany := strings.Repeat("A,", maxSymbols+1)
	tests := []struct {
		name string
		req  *http.Request
	}{
		{name: "missing symbols", req: httptest.NewRequest(http.MethodGet, "/api/details", nil)},
		{name: "too many", req: httptest.NewRequest(http.MethodGet, "/api/details?symbols="+tooMany, nil)},
		{name: "bad json", req: httptest.NewRequest(http.MethodPost, "/api/details", strings.NewReader(`{"symbols":`))},
		{name: "unknown field", req: httptest.NewRequest(http.MethodPost, "/api/details", strings.NewReader(`{"tickers":["A"]}`))},
		{name: "empty list", req: httptest.NewRequest(http.MethodPost, "/api/details", strings.NewReader(`{"symbols":[]}`))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &fakeService{}
			rr := serve(t, svc, tt.req)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Nil(t, svc.gotSymbols)
		})
	}
}

func TestFavorites(t *testing.T) {
	t.Parallel()

	svc := &fakeService{overview: aggregate.Overview{
		Stocks:       []provider.EnrichedStock{{Symbol: "AAPL", CompanyName: "Apple Inc.", IsFavorite: true}},
		Unpriced:     1,
		LookupFailed: 0,
	}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	ov := decode[aggregate.Overview](t, rr)
	require.Len(t, ov.Stocks, 1)
	require.True(t, ov.Stocks[0].IsFavorite)
	require.Equal(t, 1, ov.Unpriced)
}

func TestHistory_JSON(t *testing.T) {
	t.Parallel()

	svc := &fakeService{bars: []provider.DailyBar{{Open: 1, High: 2, Low: 0.5, Close: 1.5, TimestampMillis: 1704153600000}}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/history/AAPL?from=2024-01-02&to=2024-01-05", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"AAPL"}, svc.gotSymbols)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), svc.gotFrom)
	require.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), svc.gotTo)

	resp := decode[historyResponse](t, rr)
	require.Equal(t, "2024-01-02", resp.From)
	require.Len(t, resp.Bars, 1)
}

func TestHistory_DefaultWindow(t *testing.T) {
	t.Parallel()

	svc := &fakeService{bars: []provider.DailyBar{}}
	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/history/AAPL?to=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), svc.gotFrom)
}

func TestHistory_CSV(t *testing.T) {
	t.Parallel()

	svc := &fakeService{bars: []provider.DailyBar{{Open: 1, High: 2, Low: 0.5, Close: 1.5, TimestampMillis: 1704153600000}}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/history/AAPL?from=2024-01-02&to=2024-01-05&format=csv", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	require.Equal(t,
		"symbol,date,t,o,h,l,c,v,vw\nAAPL,2024-01-02,1704153600000,1,2,0.5,1.5,0,0\n",
		rr.Body.String())
}

func TestHistory_DownloadFilenameIsQuoted(t *testing.T) {
	t.Parallel()

	svc := &fakeService{bars: []provider.DailyBar{}}
	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/history/A%22B;x?from=2024-01-02&to=2024-01-05&format=csv", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	disposition, params, err := mime.ParseMediaType(rr.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "attachment", disposition)
	require.Equal(t, `A"B;x.csv`, params["filename"])
}

func TestHistory_BadRequests(t *testing.T) {
	t.Parallel()

	for _, target := range []string{
		"/api/history/AAPL?from=01/02/2024&to=2024-01-05",
		"/api/history/AAPL?to=yesterday",
		"/api/history/AAPL?from=2024-02-01&to=2024-01-01",
		"/api/history/AAPL?from=2024-01-01&to=2024-01-02&format=xlsx",
	} {
		svc := &fakeService{}
		rr := serve(t, svc, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rr.Code, target)
		require.Nil(t, svc.gotSymbols, target)
	}
}

func TestNews(t *testing.T) {
	t.Parallel()

	svc := &fakeService{news: []provider.NewsItem{{Title: "Apple ships", URL: "https://n/1", PublishedAt: "2024-01-05T12:00:00Z"}}}

	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/news/AAPL", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 10, svc.gotLimit)
	require.Len(t, decode[newsResponse](t, rr).News, 1)

	rr = serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/news/AAPL?limit=3", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 3, svc.gotLimit)

	rr = serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/news/AAPL?limit=-1", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEmptySymbolIsBadRequest(t *testing.T) {
	t.Parallel()

	svc := &fakeService{err: fmt.Errorf("wrapped: %w", aggregate.ErrEmptySymbol)}
	rr := serve(t, svc, httptest.NewRequest(http.MethodGet, "/api/news/%20", nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGzip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=apple", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rr := serve(t, &fakeService{stocks: []provider.EnrichedStock{{Symbol: "AAPL"}}}, req)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Contains(t, string(body), `"symbol":"AAPL"`)
}

type panicService struct{ fakeService }

func (panicService) SearchStocks(context.Context, string) ([]provider.EnrichedStock, error) {
	panic("boom")
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	rr := serve(t, &panicService{}, httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
