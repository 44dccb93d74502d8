package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// fallbackPort guards against a zero port when the metrics server is enabled
// without an explicit port in the config.
const fallbackPort = 9090

// NewHTTPServer builds the listener that serves the provider, pipeline and
// cache collectors at /metrics.
func NewHTTPServer(address string, port int) *http.Server {
	if port == 0 {
		port = fallbackPort
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", address, port),
		Handler: mux,
	}
}
