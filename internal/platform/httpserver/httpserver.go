package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Write and idle timeouts are generous because a
// cold screening run performs six upstream round-trips before responding.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
