// Package cache provee un cache de bytes con backend intercambiable.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para correr varias réplicas)
//
// Acá se usa para el JWKS serializado (TTL corto).
package cache

import "time"

// Cache define las operaciones mínimas de cache.
type Cache interface {
	// Get obtiene un valor. El segundo retorno indica hit/miss.
	Get(k string) ([]byte, bool)

	// Set guarda un valor con TTL.
	Set(k string, v []byte, ttl time.Duration)

	// Delete elimina una key.
	Delete(k string)
}
