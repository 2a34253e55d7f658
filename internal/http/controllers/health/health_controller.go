package health

import (
	"net/http"

	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// HealthController expone liveness y readiness.
type HealthController struct {
	repo core.KeyRepository
}

func NewHealthController(repo core.KeyRepository) *HealthController {
	return &HealthController{repo: repo}
}

// Healthz: liveness. El proceso responde, listo.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz: readiness. Verifica que el store esté accesible.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	if err := c.repo.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
