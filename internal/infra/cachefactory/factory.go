// Package cachefactory instancia el backend de cache según config.
// Vive separado de internal/cache para evitar ciclos de import con
// los drivers concretos.
package cachefactory

import (
	"fmt"

	"github.com/TylerAdamMartinez/JWKS-server/internal/cache"
	"github.com/TylerAdamMartinez/JWKS-server/internal/cache/memory"
	"github.com/TylerAdamMartinez/JWKS-server/internal/cache/redis"
	"github.com/TylerAdamMartinez/JWKS-server/internal/config"
)

// New crea el cache según Cache.Kind ("memory" default, "redis").
func New(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Kind {
	case "", "memory":
		return memory.New(cfg.CacheTTLDuration()), nil
	case "redis":
		return redis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB), nil
	default:
		return nil, fmt.Errorf("cachefactory: kind desconocido %q", cfg.Cache.Kind)
	}
}
