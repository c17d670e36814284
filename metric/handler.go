package metric

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// A Handler serves the scrape endpoint. Every request gathers a fresh
// snapshot and renders it in the exposition format negotiated with the
// client (text format by default).
type Handler struct {
	closed int32
	next   http.Handler
}

// NewHandler creates the scrape handler for the gatherer
func NewHandler(gatherer prometheus.Gatherer, l *zap.Logger) *Handler {

	if l == nil {
		l = zap.NewNop()
	}

	return &Handler{
		next: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			ErrorLog:      zap.NewStdLog(l.Named("scrape")),
			ErrorHandling: promhttp.ContinueOnError,
		}),
	}
}

// Shutdown makes the handler answer 503 to every following request
func (h *Handler) Shutdown() {
	atomic.StoreInt32(&h.closed, 1)
}

// ServeHTTP renders the metrics (http.Handler implementation)
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {

	if atomic.LoadInt32(&h.closed) > 0 {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}

	h.next.ServeHTTP(w, req)
}
