// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/auth"
	healthctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/health"
	jwksctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/jwks"
	mw "github.com/TylerAdamMartinez/JWKS-server/internal/http/middlewares"
)

// Deps contiene las dependencias del router.
type Deps struct {
	Auth   *authctrl.AuthController
	JWKS   *jwksctrl.JWKSController
	Health *healthctrl.HealthController
}

// New construye el handler raíz con la cadena de middlewares estándar.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithMetrics())

	r.Get("/", index)
	r.Get("/.well-known/jwks.json", deps.JWKS.KeySet)
	r.Post("/auth", deps.Auth.Auth)

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Textos de 404/405 del servicio original.
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("404: NOT FOUND"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte("405: METHOD NOT ALLOWED"))
	})

	return r
}

// index responde el saludo fijo del servicio.
func index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Howdy!"))
}
