package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	dto "github.com/TylerAdamMartinez/JWKS-server/internal/http/dto/auth"
	"github.com/TylerAdamMartinez/JWKS-server/internal/http/helpers"
	svc "github.com/TylerAdamMartinez/JWKS-server/internal/http/services/auth"
	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

const (
	maxAuthBodySize = 64 * 1024 // 64KB
	contentTypeText = "text/plain; charset=utf-8"
)

// AuthController maneja POST /auth.
type AuthController struct {
	service svc.TokenService
}

func NewAuthController(service svc.TokenService) *AuthController {
	return &AuthController{service: service}
}

// Auth maneja POST /auth[?expired=true].
// Responde el token firmado como texto plano. La validación del body corre
// antes de tocar el store o cualquier clave.
func (c *AuthController) Auth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("AuthController.Auth"))

	r.Body = http.MaxBytesReader(w, r.Body, maxAuthBodySize)
	defer r.Body.Close()

	var req dto.AuthRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		helpers.WriteError(w, helpers.ErrInvalidJSON)
		return
	}

	expired := strings.EqualFold(r.URL.Query().Get("expired"), "true")

	token, err := c.service.IssueToken(ctx, req, expired)
	if err != nil {
		log.Debug("token issuance failed", logger.Err(err))
		writeAuthError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}

// ─── Helpers ───

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dto.ErrMissingFields):
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail("username y password son obligatorios"))

	case errors.Is(err, jwtx.ErrNoValidKey):
		// misconfiguración operativa, no error del cliente
		helpers.WriteError(w, helpers.ErrInternalServerError)

	case errors.Is(err, jwtx.ErrSigning):
		helpers.WriteError(w, helpers.ErrInternalServerError)

	case errors.Is(err, core.ErrStorage):
		helpers.WriteError(w, helpers.ErrServiceUnavailable)

	default:
		helpers.WriteError(w, helpers.ErrInternalServerError)
	}
}
