package logger

import (
	"time"

	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// Bytes crea un campo para los bytes de respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// Addr crea un campo para una dirección de escucha.
func Addr(v string) zap.Field {
	return zap.String("addr", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - NEGOCIO
// =================================================================================

// KID crea un campo para el identificador de una signing key.
func KID(v string) zap.Field {
	return zap.String("kid", v)
}

// Intent crea un campo para la intención de emisión ("normal" | "expired").
func Intent(v string) zap.Field {
	return zap.String("intent", v)
}

// Subject crea un campo para el sub de un token.
func Subject(v string) zap.Field {
	return zap.String("sub", v)
}

// ExpiresAt crea un campo para un instante de expiración.
func ExpiresAt(v time.Time) zap.Field {
	return zap.Time("expires_at", v)
}

// Driver crea un campo para el driver de storage/cache.
func Driver(v string) zap.Field {
	return zap.String("driver", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - SISTEMA
// =================================================================================

// Component crea un campo para el componente/módulo.
func Component(v string) zap.Field {
	return zap.String("component", v)
}

// Op crea un campo para la operación actual.
func Op(v string) zap.Field {
	return zap.String("op", v)
}

// Layer crea un campo para la capa (controller, service, repository).
func Layer(v string) zap.Field {
	return zap.String("layer", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}

// Count crea un campo para un conteo.
func Count(v int) zap.Field {
	return zap.Int("count", v)
}
