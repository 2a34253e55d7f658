package core

import (
	"crypto/rsa"
	"time"
)

// AlgRS256 es la única familia de firma del sistema.
const AlgRS256 = "RS256"

// KeyRecord es un par de claves RSA con identidad y expiración.
// Inmutable una vez insertado: la validez se computa siempre contra
// ExpiresAt al momento de cada lectura, nunca se guarda como flag.
type KeyRecord struct {
	KID        string
	Alg        string // "RS256"
	PublicKey  *rsa.PublicKey
	PrivateKey *rsa.PrivateKey // nunca se serializa hacia afuera
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired indica si el registro está expirado en el instante dado.
func (k *KeyRecord) Expired(now time.Time) bool {
	return !k.ExpiresAt.After(now)
}
