package jwt_test

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/adapters/memory"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

func mustGenerate(t *testing.T, gen *jwtx.Generator, validity time.Duration) *core.KeyRecord {
	t.Helper()
	rec, err := gen.Generate(validity)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return rec
}

func mustInsert(t *testing.T, repo core.KeyRepository, rec *core.KeyRecord) {
	t.Helper()
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
}

// pubKeyFromJWK reconstruye la clave RSA desde los campos n/e publicados.
func pubKeyFromJWK(t *testing.T, k jwtx.JWK) *rsa.PublicKey {
	t.Helper()
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		t.Fatalf("decode n: %v", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		t.Fatalf("decode e: %v", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}
}

func TestPublisher_FiltersExpired(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := jwtx.NewGenerator(testKeyBits)

	valid := mustGenerate(t, gen, time.Hour)
	expired := mustGenerate(t, gen, -time.Hour)
	mustInsert(t, repo, valid)
	mustInsert(t, repo, expired)

	pub := jwtx.NewPublisher(repo, nil, 0)
	b, err := pub.JWKSJSON(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("jwks: %v", err)
	}

	var doc jwtx.JWKS
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Keys) != 1 {
		t.Fatalf("keys = %d, esperaba 1", len(doc.Keys))
	}
	k := doc.Keys[0]
	if k.Kid != valid.KID {
		t.Fatalf("kid = %q, esperaba %q", k.Kid, valid.KID)
	}
	if k.Kty != "RSA" || k.Use != "sig" || k.Alg != "RS256" {
		t.Fatalf("campos JWK inesperados: %+v", k)
	}

	// n/e redondean a la misma clave pública
	got := pubKeyFromJWK(t, k)
	if got.N.Cmp(valid.PublicKey.N) != 0 || got.E != valid.PublicKey.E {
		t.Fatal("la clave publicada no coincide con la generada")
	}
}

func TestPublisher_EmptySetIsNotAnError(t *testing.T) {
	pub := jwtx.NewPublisher(memory.New(), nil, 0)
	b, err := pub.JWKSJSON(context.Background(), time.Now().UTC())
	if err != nil {
		t.Fatalf("jwks: %v", err)
	}
	if strings.TrimSpace(string(b)) != `{"keys":[]}` {
		t.Fatalf("doc = %s, esperaba {\"keys\":[]}", b)
	}
}

func TestPublisher_NeverLeaksPrivateKey(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	gen := jwtx.NewGenerator(testKeyBits)

	rec := mustGenerate(t, gen, time.Hour)
	mustInsert(t, repo, rec)

	pub := jwtx.NewPublisher(repo, nil, 0)
	b, err := pub.JWKSJSON(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("jwks: %v", err)
	}

	// ninguna codificación de la privada puede aparecer en el documento
	der := x509.MarshalPKCS1PrivateKey(rec.PrivateKey)
	for _, enc := range []string{
		base64.RawURLEncoding.EncodeToString(der),
		base64.StdEncoding.EncodeToString(der),
		base64.RawURLEncoding.EncodeToString(rec.PrivateKey.D.Bytes()),
	} {
		if strings.Contains(string(b), enc) {
			t.Fatal("el JWKS contiene material de la clave privada")
		}
	}
}
