package router

import (
	"encoding/json"
	"net/http"

	"github.com/dialogs/console-exporter/service/info"
)

// DefaultMetricsPath is the path of the scrape endpoint
const DefaultMetricsPath = "/metrics"

// AdminRouter router for the scrape endpoint and administration functions
type AdminRouter struct {
	appinfo *info.Info
	mux     *http.ServeMux
}

// NewAdminRouter create router for the scrape handler and administration functions
func NewAdminRouter(appinfo *info.Info, metricsPath string, scrape http.Handler) *AdminRouter {

	if metricsPath == "" {
		metricsPath = DefaultMetricsPath
	}

	a := &AdminRouter{
		appinfo: appinfo,
	}

	a.mux = http.NewServeMux()
	a.mux.Handle(metricsPath, onlyGet(scrape))
	a.mux.HandleFunc("/health", a.health)
	a.mux.HandleFunc("/info", a.info)

	return a
}

// Info return application info
func (a *AdminRouter) Info() *info.Info {
	return a.appinfo
}

// ServeHTTP dispatches the request (http.Handler implementation)
func (a *AdminRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	a.mux.ServeHTTP(w, req)
}

// Health handler function for livenness and readiness probes
func (a *AdminRouter) health(w http.ResponseWriter, req *http.Request) {

	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Info returns service information
func (a *AdminRouter) info(w http.ResponseWriter, req *http.Request) {

	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(a.appinfo)
	if err != nil {
		w.Write([]byte("unknown"))
	}
}

func onlyGet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {

		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		next.ServeHTTP(w, req)
	})
}
