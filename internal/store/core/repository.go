package core

import (
	"context"
	"time"
)

// KeyRepository es el contrato del store de signing keys.
//
// Semántica común a todos los adapters:
//   - Insert rechaza kid duplicado con ErrDuplicateKey y no modifica el store.
//   - ListValid/ListExpired filtran por ExpiresAt contra el instante recibido,
//     ordenado por CreatedAt ascendente.
//   - PickValid/PickExpired devuelven el registro con CreatedAt más reciente
//     dentro del grupo (la clave más fresca gana), o ErrNotFound.
//   - Las lecturas ven snapshots consistentes: nunca un registro a medio
//     escribir, y siempre los inserts completados antes de la lectura.
type KeyRepository interface {
	Insert(ctx context.Context, k *KeyRecord) error
	ListValid(ctx context.Context, now time.Time) ([]KeyRecord, error)
	ListExpired(ctx context.Context, now time.Time) ([]KeyRecord, error)
	PickValid(ctx context.Context, now time.Time) (*KeyRecord, error)
	PickExpired(ctx context.Context, now time.Time) (*KeyRecord, error)

	// Ping verifica que el backend esté accesible (readiness).
	Ping(ctx context.Context) error

	// Close libera recursos del backend.
	Close() error
}
