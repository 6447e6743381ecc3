package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/market-data-watch/internal/http/handlers"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

func TestRouterRoutesKnownPaths(t *testing.T) {
	h := handlers.NewHandler(state.NewStore(), nil, nil, nil)
	router := NewRouter(h)

	cases := map[string]int{
		"/health": http.StatusOK,
		"/ready":  http.StatusOK,
		"/market": http.StatusOK,
		// Plain GET without upgrade headers is rejected by the upgrader.
		"/market/stream": http.StatusBadRequest,
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(handlers.NewHandler(state.NewStore(), nil, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
