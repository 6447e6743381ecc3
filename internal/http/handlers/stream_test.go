package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/present"
	"github.com/preston-bernstein/market-data-watch/internal/state"
	"github.com/preston-bernstein/market-data-watch/internal/testutil"
)

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/market/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial stream: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) MarketResponse {
	t.Helper()
	var resp MarketResponse
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read stream message: %v", err)
	}
	return resp
}

func TestStreamSendsCurrentStateThenChanges(t *testing.T) {
	store := state.NewStore()
	store.CompleteCycle([]market.Record{testutil.SampleRecord("1", 100, 0)}, time.Now())
	srv := httptest.NewServer(NewHandler(store, nil, nil, nil))
	defer srv.Close()

	conn := dialStream(t, srv)

	first := readState(t, conn)
	if first.View != present.ViewPopulated || len(first.Records) != 1 {
		t.Fatalf("expected current state first, got %+v", first)
	}

	store.BeginCycle()
	loading := readState(t, conn)
	if !loading.Loading || len(loading.Records) != 1 || loading.Version <= first.Version {
		t.Fatalf("expected loading update with records held, got %+v", loading)
	}

	store.CompleteCycle([]market.Record{testutil.SampleRecord("1", 175, 75)}, time.Now())
	done := readState(t, conn)
	if done.Loading || done.Records[0].Category != market.StrongPositive {
		t.Fatalf("expected completed update, got %+v", done)
	}
}

func TestStreamReleasesSubscriptionOnClose(t *testing.T) {
	store := state.NewStore()
	srv := httptest.NewServer(NewHandler(store, nil, nil, nil))
	defer srv.Close()

	conn := dialStream(t, srv)
	readState(t, conn)
	if got := store.Subscribers(); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for store.Subscribers() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected subscription released after client closed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamPings(t *testing.T) {
	store := state.NewStore()
	h := NewHandler(store, nil, nil, nil)
	h.pingInterval = 10 * time.Millisecond
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dialStream(t, srv)
	pinged := make(chan struct{}, 1)
	conn.SetPingHandler(func(string) error {
		select {
		case pinged <- struct{}{}:
		default:
		}
		return nil
	})

	// Reading drives control frame handlers.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pinged:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected server ping")
	}
}

func TestStreamRejectsPlainRequest(t *testing.T) {
	rr := testutil.Serve(NewHandler(state.NewStore(), nil, nil, nil), http.MethodGet, "/market/stream", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestStreamUpgradeFailureLogsErrorField(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(NewHandler(state.NewStore(), logger, nil, nil), http.MethodGet, "/market/stream", nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	out := buf.String()
	if !strings.Contains(out, "stream upgrade failed") || !strings.Contains(out, "error=") {
		t.Fatalf("expected upgrade failure logged under error key, got %q", out)
	}
	if strings.Contains(out, " err=") {
		t.Fatalf("unexpected err key in %q", out)
	}
}

func TestStreamWithoutStore(t *testing.T) {
	rr := testutil.Serve(NewHandler(nil, nil, nil, nil), http.MethodGet, "/market/stream", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
