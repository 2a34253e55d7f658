// Package bootstrap siembra el store de claves al arrancar el proceso.
package bootstrap

import (
	"context"
	"errors"
	"time"

	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// Seed garantiza el invariante de arranque: al menos una clave vigente y
// al menos una ya expirada. Es idempotente: con un store durable que ya
// tiene claves que sirven, no genera nada.
func Seed(ctx context.Context, repo core.KeyRepository, gen *jwtx.Generator, validity time.Duration) error {
	now := time.Now().UTC()
	log := logger.Named("bootstrap")

	if _, err := repo.PickValid(ctx, now); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}
		rec, err := gen.Generate(validity)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, rec); err != nil {
			return err
		}
		log.Info("seeded valid signing key", logger.KID(rec.KID), logger.ExpiresAt(rec.ExpiresAt))
	}

	if _, err := repo.PickExpired(ctx, now); err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return err
		}
		rec, err := gen.Generate(-validity)
		if err != nil {
			return err
		}
		if err := repo.Insert(ctx, rec); err != nil {
			return err
		}
		log.Info("seeded expired signing key", logger.KID(rec.KID), logger.ExpiresAt(rec.ExpiresAt))
	}

	return nil
}
