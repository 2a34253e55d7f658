package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/TylerAdamMartinez/JWKS-server/internal/metrics"
	"github.com/TylerAdamMartinez/JWKS-server/internal/observability/logger"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

var (
	// ErrNoValidKey: se pidió un token normal y el store no tiene ninguna
	// clave vigente. Falla del lado del servidor (misconfiguración
	// operativa); nunca se firma con una clave expirada en su lugar.
	ErrNoValidKey = errors.New("no_valid_signing_key")
	// ErrSigning: falló el primitivo de firma. No se reintenta.
	ErrSigning = errors.New("token_signing_failed")
)

// Intent indica con qué clase de clave se firma.
type Intent string

const (
	IntentNormal  Intent = "normal"
	IntentExpired Intent = "expired"
)

// expiredFallbackValidity se usa cuando hay que generar una clave ya
// expirada on demand (store sin claves expiradas).
const expiredFallbackValidity = -time.Hour

// Issuer firma tokens RS256 con una clave del store, elegida según la
// intención del caller.
type Issuer struct {
	Iss  string // claim "iss", fijo por configuración
	Repo core.KeyRepository
	Gen  *Generator
}

func NewIssuer(iss string, repo core.KeyRepository, gen *Generator) *Issuer {
	return &Issuer{Iss: iss, Repo: repo, Gen: gen}
}

// Issue emite un token firmado.
//
// Normal: firma con la clave vigente de CreatedAt más reciente; sin claves
// vigentes devuelve ErrNoValidKey. Expired: firma con la clave expirada de
// CreatedAt más reciente; si no hay ninguna, genera una con validity
// negativa, la inserta y firma con esa — el path de token expirado tiene
// que ser siempre ejercitable.
//
// El claim exp es el expires_at de la clave elegida: el token nunca vive
// más que su clave, y un token expired nace ya vencido. Un verifier puede
// rechazarlo por exp sin mirar el key set.
func (i *Issuer) Issue(ctx context.Context, intent Intent, sub string, now time.Time) (string, error) {
	rec, err := i.selectKey(ctx, intent, now)
	if err != nil {
		return "", err
	}

	claims := jwtv5.MapClaims{
		"iss": i.Iss,
		"sub": sub,
		"iat": now.Unix(),
		"exp": rec.ExpiresAt.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodRS256, claims)
	tk.Header["kid"] = rec.KID
	tk.Header["typ"] = "JWT"

	start := time.Now()
	signed, err := tk.SignedString(rec.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	metrics.TokenSignDuration.Observe(time.Since(start).Seconds())
	metrics.TokensIssued.WithLabelValues(string(intent)).Inc()

	logger.From(ctx).Debug("token issued",
		logger.Component("issuer"),
		logger.Intent(string(intent)),
		logger.KID(rec.KID),
		logger.ExpiresAt(rec.ExpiresAt),
	)
	return signed, nil
}

// Keyfunc devuelve un jwtv5.Keyfunc que resuelve la pubkey por el kid del
// header, buscando entre todas las claves del store (vigentes y expiradas:
// verificar firma de un token expirado es un caso soportado).
func (i *Issuer) Keyfunc(now time.Time) jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("kid_missing")
		}
		ctx := context.Background()
		for _, list := range []func(context.Context, time.Time) ([]core.KeyRecord, error){
			i.Repo.ListValid,
			i.Repo.ListExpired,
		} {
			recs, err := list(ctx, now)
			if err != nil {
				return nil, err
			}
			for _, r := range recs {
				if r.KID == kid {
					return r.PublicKey, nil
				}
			}
		}
		return nil, errors.New("kid_not_found")
	}
}

func (i *Issuer) selectKey(ctx context.Context, intent Intent, now time.Time) (*core.KeyRecord, error) {
	if intent == IntentExpired {
		rec, err := i.Repo.PickExpired(ctx, now)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		return i.generateExpired(ctx)
	}

	rec, err := i.Repo.PickValid(ctx, now)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNoValidKey
		}
		return nil, err
	}
	return rec, nil
}

// generateExpired crea e inserta una clave ya vencida on demand.
func (i *Issuer) generateExpired(ctx context.Context) (*core.KeyRecord, error) {
	rec, err := i.Gen.Generate(expiredFallbackValidity)
	if err != nil {
		return nil, err
	}
	if err := i.Repo.Insert(ctx, rec); err != nil {
		return nil, err
	}
	logger.From(ctx).Info("expired key generated on demand",
		logger.Component("issuer"),
		logger.KID(rec.KID),
	)
	return rec, nil
}
