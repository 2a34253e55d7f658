package jwks

import (
	"net/http"
	"time"

	"github.com/TylerAdamMartinez/JWKS-server/internal/http/helpers"
	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
)

// JWKSController maneja GET /.well-known/jwks.json.
type JWKSController struct {
	publisher *jwtx.Publisher
}

func NewJWKSController(publisher *jwtx.Publisher) *JWKSController {
	return &JWKSController{publisher: publisher}
}

// KeySet responde el JWKS vigente. Sin claves vigentes devuelve
// {"keys":[]} con 200; un store caído es el único error posible.
func (c *JWKSController) KeySet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	b, err := c.publisher.JWKSJSON(ctx, time.Now().UTC())
	if err != nil {
		logger.From(ctx).Error("jwks publish failed",
			logger.Layer("controller"),
			logger.Op("JWKSController.KeySet"),
			logger.Err(err),
		)
		helpers.WriteError(w, helpers.ErrServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
