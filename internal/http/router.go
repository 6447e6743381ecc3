package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/market-data-watch/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/market", handler.Market)
	mux.HandleFunc("/market/stream", handler.Stream)
	return mux
}
