package httpserver

import (
	"net/http"
	"time"
)

// New builds the HTTP server for the decision API. The write timeout is
// derived from the decision deadline with headroom for encoding the response,
// so a check that finishes inside its own budget is never cut off mid-write.
func New(addr string, handler http.Handler, decisionTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      decisionTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
