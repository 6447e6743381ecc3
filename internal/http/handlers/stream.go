package handlers

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/market-data-watch/internal/logging"
)

// Stream upgrades to a WebSocket and pushes the market state: the current state first,
// then one message per change. Intermediate states are skipped for slow readers.
func (h *Handler) Stream(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.store == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "market data not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		logging.Warn(logger, "stream upgrade failed", logging.FieldError, err)
		return
	}
	defer conn.Close()

	updates, cancel := h.store.Subscribe()
	defer cancel()
	h.metrics.RecordStreamSubscribers(1)
	defer h.metrics.RecordStreamSubscribers(-1)
	logging.Info(logger, "stream subscriber connected")

	closed := make(chan struct{})
	go drain(conn, closed)

	ping := time.NewTicker(h.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			logging.Info(logger, "stream subscriber disconnected")
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
			if err := conn.WriteJSON(NewMarketResponse(st)); err != nil {
				logging.Warn(logger, "stream write failed", logging.FieldError, err, slog.Uint64("version", st.Version))
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(h.writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				logging.Warn(logger, "stream ping failed", logging.FieldError, err)
				return
			}
		}
	}
}

// drain consumes client frames so control messages are processed, and signals when the peer goes away.
func drain(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
