package jwt

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// ----- JWKS (serialización) -----

type JWK struct {
	Kty string `json:"kty"` // "RSA"
	Use string `json:"use"` // "sig"
	Alg string `json:"alg"` // "RS256"
	Kid string `json:"kid"`
	N   string `json:"n"` // base64url(modulus big-endian), sin padding
	E   string `json:"e"` // base64url(exponent big-endian), sin padding
}

type JWKS struct {
	Keys []JWK `json:"keys"`
}

// newJWK proyecta la mitad pública de una clave. Recibe solo los campos
// públicos a propósito: la privada no es alcanzable desde acá.
func newJWK(kid, alg string, pub *rsa.PublicKey) JWK {
	return JWK{
		Kty: "RSA",
		Use: "sig",
		Alg: alg,
		Kid: kid,
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// buildJWKS construye el documento JWKS a partir de registros del store.
// Un slice vacío produce {"keys":[]}, no un error.
func buildJWKS(keys []core.KeyRecord) []byte {
	doc := JWKS{Keys: make([]JWK, 0, len(keys))}
	for _, k := range keys {
		if k.PublicKey == nil {
			continue
		}
		doc.Keys = append(doc.Keys, newJWK(k.KID, k.Alg, k.PublicKey))
	}
	b, _ := json.Marshal(doc)
	return b
}
