package auth

import (
	"context"
	"time"

	dto "github.com/TylerAdamMartinez/JWKS-server/internal/http/dto/auth"
	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
)

// TokenService orquesta la emisión de tokens sobre el Issuer.
type TokenService interface {
	IssueToken(ctx context.Context, req dto.AuthRequest, expired bool) (string, error)
}

type tokenService struct {
	issuer *jwtx.Issuer
}

func NewTokenService(issuer *jwtx.Issuer) TokenService {
	return &tokenService{issuer: issuer}
}

// IssueToken valida el request y firma. El sub del token es el username
// recibido, sin autenticar: este servicio emite material de firma, no
// verifica identidades.
func (s *tokenService) IssueToken(ctx context.Context, req dto.AuthRequest, expired bool) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	intent := jwtx.IntentNormal
	if expired {
		intent = jwtx.IntentExpired
	}

	now := time.Now().UTC()
	token, err := s.issuer.Issue(ctx, intent, req.Username, now)
	if err != nil {
		logger.From(ctx).Error("issue failed",
			logger.Layer("service"),
			logger.Intent(string(intent)),
			logger.Err(err),
		)
		return "", err
	}
	return token, nil
}
