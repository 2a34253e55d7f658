package middlewares

import (
	"net/http"
	"strconv"

	"github.com/TylerAdamMartinez/JWKS-server/internal/metrics"
)

// WithMetrics cuenta requests por método, path y status.
// El label path es el patrón registrado, no el URL crudo; con el surface
// chico de este servicio no hay riesgo de cardinalidad.
func WithMetrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			metrics.HTTPRequests.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		})
	}
}
