package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/poller"
	"github.com/preston-bernstein/market-data-watch/internal/present"
	"github.com/preston-bernstein/market-data-watch/internal/state"
	"github.com/preston-bernstein/market-data-watch/internal/testutil"
)

func TestHealth(t *testing.T) {
	h := NewHandler(state.NewStore(), nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(state.NewStore(), nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := NewHandler(state.NewStore(), nil, nil, nil)
	for _, path := range []string{"/health", "/ready", "/market", "/market/stream"} {
		rr := testutil.Serve(h, http.MethodPost, path, nil)
		testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	}
}

func TestUnknownPathNotFound(t *testing.T) {
	rr := testutil.Serve(NewHandler(state.NewStore(), nil, nil, nil), http.MethodGet, "/quotes", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		status *poller.Status
		want   int
		errMsg string
	}{
		{name: "no status source", want: http.StatusOK},
		{name: "never succeeded", status: &poller.Status{}, want: http.StatusServiceUnavailable, errMsg: "not ready"},
		{name: "healthy", status: &poller.Status{LastSuccess: time.Now()}, want: http.StatusOK},
		{
			name:   "failing repeatedly",
			status: &poller.Status{LastSuccess: time.Now(), ConsecutiveFailures: 5, LastError: "upstream 503"},
			want:   http.StatusServiceUnavailable,
			errMsg: "upstream 503",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var statusFn func() poller.Status
			if tt.status != nil {
				st := *tt.status
				statusFn = func() poller.Status { return st }
			}
			h := NewHandler(state.NewStore(), nil, nil, statusFn)

			rr := testutil.Serve(h, http.MethodGet, "/ready", nil)
			testutil.AssertStatus(t, rr, tt.want)
			if tt.errMsg != "" {
				var resp map[string]string
				testutil.DecodeJSON(t, rr, &resp)
				if resp["error"] != tt.errMsg {
					t.Fatalf("expected error %q, got %q", tt.errMsg, resp["error"])
				}
			}
		})
	}
}

func TestMarketInitialStateIsEmpty(t *testing.T) {
	h := NewHandler(state.NewStore(), nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/market", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp MarketResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.View != present.ViewEmpty || resp.Message != present.MessageEmpty {
		t.Fatalf("expected empty view, got %s %q", resp.View, resp.Message)
	}
	if resp.Records == nil || len(resp.Records) != 0 {
		t.Fatalf("expected empty records array, got %#v", resp.Records)
	}
	if resp.UpdatedAt != nil {
		t.Fatalf("expected no updatedAt before first success")
	}
}

func TestMarketServesRecordsWithCategory(t *testing.T) {
	store := state.NewStore()
	at := testutil.MustParseRFC3339("2024-03-01T12:00:00Z")
	store.CompleteCycle([]market.Record{
		testutil.SampleRecord("1", 175, 75),
		testutil.SampleRecord("2", 30, -70),
	}, at)
	h := NewHandler(store, nil, nil, nil)

	rr := testutil.Serve(h, http.MethodGet, "/market", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp MarketResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.View != present.ViewPopulated || resp.Error || resp.Loading {
		t.Fatalf("unexpected flags %+v", resp)
	}
	if len(resp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Records))
	}
	if resp.Records[0].ID != "1" || resp.Records[0].Category != market.StrongPositive || resp.Records[0].Class != "green" {
		t.Fatalf("unexpected first record %+v", resp.Records[0])
	}
	if resp.Records[1].Category != market.ModerateNegative || resp.Records[1].Class != "lightred" {
		t.Fatalf("unexpected second record %+v", resp.Records[1])
	}
	if resp.UpdatedAt == nil || !resp.UpdatedAt.Equal(at) {
		t.Fatalf("expected updatedAt %s, got %v", at, resp.UpdatedAt)
	}
}

func TestMarketErrorKeepsRecords(t *testing.T) {
	store := state.NewStore()
	store.CompleteCycle([]market.Record{testutil.SampleRecord("1", 10, 0)}, time.Now())
	store.BeginCycle()
	store.FailCycle()

	rr := testutil.Serve(NewHandler(store, nil, nil, nil), http.MethodGet, "/market", nil)
	var resp MarketResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.View != present.ViewError || !resp.Error || resp.Loading {
		t.Fatalf("expected error view with loading cleared, got %+v", resp)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("expected held record in error state, got %d", len(resp.Records))
	}
}

func TestMarketWithoutStore(t *testing.T) {
	rr := testutil.Serve(NewHandler(nil, nil, nil, nil), http.MethodGet, "/market", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func BenchmarkMarket(b *testing.B) {
	store := state.NewStore()
	records := make([]market.Record, 0, 100)
	for i := 0; i < 100; i++ {
		records = append(records, testutil.SampleRecord(market.InstrumentID(strconv.Itoa(i)), float64(i+1), float64(i-50)))
	}
	store.CompleteCycle(records, time.Now())
	h := NewHandler(store, nil, nil, nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/market", nil)
		h.ServeHTTP(rr, req)
	}
}
