package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TylerAdamMartinez/JWKS-server/internal/metrics"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// Generator produce pares RSA frescos con kid y expiración.
// No persiste nada: guardar el registro es responsabilidad del caller.
type Generator struct {
	Bits int
}

// NewGenerator crea un generador para el tamaño de clave dado (default 2048).
func NewGenerator(bits int) *Generator {
	if bits <= 0 {
		bits = 2048
	}
	return &Generator{Bits: bits}
}

// Generate crea un KeyRecord con kid uuid, CreatedAt = ahora y
// ExpiresAt = ahora + validity. Una validity negativa produce un registro
// ya expirado (seeds y negative-path testing).
//
// Falla solo si el primitivo RSA / la fuente de entropía falla; no se
// reintenta para no enmascarar una fuente de entropía degradada.
func (g *Generator) Generate(validity time.Duration) (*core.KeyRecord, error) {
	priv, err := rsa.GenerateKey(rand.Reader, g.Bits)
	if err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}

	// Truncado a segundos: exp viaja como unix seconds en los claims.
	now := time.Now().UTC().Truncate(time.Second)

	state := "valid"
	if validity <= 0 {
		state = "expired"
	}
	metrics.KeysGenerated.WithLabelValues(state).Inc()

	return &core.KeyRecord{
		KID:        uuid.NewString(),
		Alg:        core.AlgRS256,
		PublicKey:  &priv.PublicKey,
		PrivateKey: priv,
		CreatedAt:  now,
		ExpiresAt:  now.Add(validity),
	}, nil
}
