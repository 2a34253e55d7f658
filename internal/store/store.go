// Package store selecciona el adapter de persistencia según config.
package store

import (
	"context"
	"fmt"

	"github.com/TylerAdamMartinez/JWKS-server/internal/config"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/adapters/memory"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/adapters/pg"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/adapters/sqlite"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// Open crea el KeyRepository según Storage.Driver.
func Open(ctx context.Context, cfg *config.Config) (core.KeyRepository, error) {
	switch cfg.Storage.Driver {
	case "", "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.Open(ctx, cfg.Storage.SQLite.Path)
	case "postgres", "pg":
		return pg.Open(ctx, cfg.Storage.Postgres.DSN, cfg.Storage.Postgres.MaxOpenConns)
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Storage.Driver)
	}
}
