package core

import "errors"

var (
	// ErrNotFound: no hay registro que satisfaga la consulta.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateKey: insert con un kid ya existente. Dado que la
	// generación usa uuid v4, esto es una violación de invariante de
	// programación, no una condición operativa esperada.
	ErrDuplicateKey = errors.New("duplicate kid")
	// ErrStorage: el backend de persistencia falló o está corrupto.
	ErrStorage = errors.New("storage unavailable")
)
