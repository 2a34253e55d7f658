package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics for the key lifecycle and token issuance paths. They live
// in a standalone package to avoid import cycles between jwt and HTTP packages.

var (
	KeysGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jwks_keys_generated_total",
		Help: "Claves RSA generadas, por estado inicial (valid|expired)",
	}, []string{"state"})

	TokensIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jwks_tokens_issued_total",
		Help: "Tokens firmados, por intención (normal|expired)",
	}, []string{"intent"})

	TokenSignDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jwks_token_sign_duration_seconds",
		Help:    "Duración de la firma RS256",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	JWKSRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jwks_keyset_requests_total",
		Help: "Requests al key set publicado, por resultado de cache (hit|miss)",
	}, []string{"cache"})

	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Requests HTTP por método, path y status",
	}, []string{"method", "path", "status"})
)

// Register registers all collectors on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		KeysGenerated,
		TokensIssued,
		TokenSignDuration,
		JWKSRequests,
		HTTPRequests,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
