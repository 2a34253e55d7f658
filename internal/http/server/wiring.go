// Package server hace el wiring de dependencias del servicio HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TylerAdamMartinez/JWKS-server/internal/bootstrap"
	"github.com/TylerAdamMartinez/JWKS-server/internal/config"
	authctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/auth"
	healthctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/health"
	jwksctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/jwks"
	"github.com/TylerAdamMartinez/JWKS-server/internal/http/router"
	authsvc "github.com/TylerAdamMartinez/JWKS-server/internal/http/services/auth"
	"github.com/TylerAdamMartinez/JWKS-server/internal/infra/cachefactory"
	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/metrics"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store"
)

// Build arma el handler HTTP con todas las dependencias cableadas y
// devuelve además un cleanup para el shutdown.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	if err := metrics.Register(nil); err != nil {
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}

	// 1. Store (el único estado mutable compartido del proceso)
	repo, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("store: %w", err)
	}
	cleanup := func() error { return repo.Close() }
	logger.L().Info("store ready", logger.Component("wiring"), logger.Driver(cfg.Storage.Driver))

	// 2. Generator + seed (una clave vigente y una expirada, idempotente)
	gen := jwtx.NewGenerator(cfg.JWT.KeySize)
	if err := bootstrap.Seed(ctx, repo, gen, cfg.KeyValidityDuration()); err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("seed: %w", err)
	}

	// 3. Cache para el JWKS publicado
	jwksCache, err := cachefactory.New(cfg)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	// 4. Publisher + Issuer
	publisher := jwtx.NewPublisher(repo, jwksCache, cfg.CacheTTLDuration())
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, repo, gen)

	// 5. Services + controllers + router
	tokenSvc := authsvc.NewTokenService(issuer)

	h := router.New(router.Deps{
		Auth:   authctrl.NewAuthController(tokenSvc),
		JWKS:   jwksctrl.NewJWKSController(publisher),
		Health: healthctrl.NewHealthController(repo),
	})
	return h, cleanup, nil
}
