package jwt_test

import (
	"testing"
	"time"

	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

// 1024 bits alcanza para tests y acelera la generación.
const testKeyBits = 1024

func TestGenerate_ValidKey(t *testing.T) {
	gen := jwtx.NewGenerator(testKeyBits)

	rec, err := gen.Generate(time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if rec.KID == "" {
		t.Fatal("kid vacío")
	}
	if rec.Alg != core.AlgRS256 {
		t.Fatalf("alg = %q, esperaba %q", rec.Alg, core.AlgRS256)
	}
	if rec.PrivateKey == nil || rec.PublicKey == nil {
		t.Fatal("key pair incompleto")
	}
	if got, want := rec.ExpiresAt, rec.CreatedAt.Add(time.Hour); !got.Equal(want) {
		t.Fatalf("expires_at = %v, esperaba %v", got, want)
	}
	if rec.Expired(time.Now().UTC()) {
		t.Fatal("clave recién generada no debería estar expirada")
	}
}

func TestGenerate_NegativeValidityProducesExpired(t *testing.T) {
	gen := jwtx.NewGenerator(testKeyBits)

	rec, err := gen.Generate(-time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !rec.Expired(time.Now().UTC()) {
		t.Fatal("validity negativa debería producir un registro ya expirado")
	}
}

func TestGenerate_UniqueKIDs(t *testing.T) {
	gen := jwtx.NewGenerator(testKeyBits)

	seen := make(map[string]struct{})
	for i := 0; i < 8; i++ {
		rec, err := gen.Generate(time.Hour)
		if err != nil {
			t.Fatalf("generate #%d: %v", i, err)
		}
		if _, dup := seen[rec.KID]; dup {
			t.Fatalf("kid duplicado: %s", rec.KID)
		}
		seen[rec.KID] = struct{}{}
	}
}
