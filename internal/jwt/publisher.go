package jwt

import (
	"context"
	"strconv"
	"time"

	"github.com/TylerAdamMartinez/JWKS-server/internal/cache"
	"github.com/TylerAdamMartinez/JWKS-server/internal/metrics"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// Publisher proyecta las claves vigentes del store al documento JWKS,
// con un cache de bytes de TTL corto adelante.
//
// La key del cache incluye el segundo truncado del instante consultado:
// dentro del mismo segundo se reutiliza el documento, y el filtrado por
// expiración sigue siendo función de (now, expires_at).
type Publisher struct {
	repo  core.KeyRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewPublisher(repo core.KeyRepository, c cache.Cache, ttl time.Duration) *Publisher {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &Publisher{repo: repo, cache: c, ttl: ttl}
}

// JWKSJSON devuelve el JWKS serializado para el instante dado.
// Solo las mitades públicas de registros con expires_at > now.
func (p *Publisher) JWKSJSON(ctx context.Context, now time.Time) ([]byte, error) {
	key := "jwks:" + strconv.FormatInt(now.Unix(), 10)

	if p.cache != nil {
		if b, ok := p.cache.Get(key); ok {
			metrics.JWKSRequests.WithLabelValues("hit").Inc()
			return b, nil
		}
	}
	metrics.JWKSRequests.WithLabelValues("miss").Inc()

	recs, err := p.repo.ListValid(ctx, now)
	if err != nil {
		return nil, err
	}
	b := buildJWKS(recs)

	if p.cache != nil {
		p.cache.Set(key, b, p.ttl)
	}
	return b, nil
}
