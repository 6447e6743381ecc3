package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/market-data-watch/internal/metrics"
	"github.com/preston-bernstein/market-data-watch/internal/poller"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

const (
	streamWriteTimeout = 5 * time.Second
	streamPingInterval = 30 * time.Second
)

// Handler serves the poll state over plain HTTP and a WebSocket stream.
type Handler struct {
	store    *state.Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	statusFn func() poller.Status
	upgrader websocket.Upgrader

	writeTimeout time.Duration
	pingInterval time.Duration
}

// NewHandler constructs a Handler with defaults.
func NewHandler(store *state.Store, logger *slog.Logger, recorder *metrics.Recorder, statusFn func() poller.Status) *Handler {
	return &Handler{
		store:    store,
		logger:   logger,
		metrics:  recorder,
		statusFn: statusFn,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Single consumer on a trusted network; origin is not checked.
			CheckOrigin: func(*nethttp.Request) bool { return true },
		},
		writeTimeout: streamWriteTimeout,
		pingInterval: streamPingInterval,
	}
}

// ServeHTTP dispatches by path when the handler is mounted without a router.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/market", "/market/":
		h.Market(w, r)
	case "/market/stream":
		h.Stream(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Market returns the current poll state with view selection and per-record classification.
func (h *Handler) Market(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.store == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "market data not configured", h.logger)
		return
	}

	resp := NewMarketResponse(h.store.Snapshot())
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Debug("served market state", "view", resp.View, "count", len(resp.Records))
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}
