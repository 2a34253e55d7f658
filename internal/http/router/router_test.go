package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	authctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/auth"
	healthctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/health"
	jwksctrl "github.com/TylerAdamMartinez/JWKS-server/internal/http/controllers/jwks"
	"github.com/TylerAdamMartinez/JWKS-server/internal/http/router"
	authsvc "github.com/TylerAdamMartinez/JWKS-server/internal/http/services/auth"
	jwtx "github.com/TylerAdamMartinez/JWKS-server/internal/jwt"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/adapters/memory"
	"github.com/TylerAdamMartinez/JWKS-server/internal/store/core"
)

type fixture struct {
	handler http.Handler
	valid   *core.KeyRecord
	expired *core.KeyRecord
}

// newFixture arma el stack HTTP completo sobre un store en memoria,
// sembrado con una clave vigente y una expirada.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	gen := jwtx.NewGenerator(1024)

	valid, err := gen.Generate(time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, valid))

	expired, err := gen.Generate(-time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, expired))

	issuer := jwtx.NewIssuer("http://localhost:8080", repo, gen)
	publisher := jwtx.NewPublisher(repo, nil, 0)

	h := router.New(router.Deps{
		Auth:   authctrl.NewAuthController(authsvc.NewTokenService(issuer)),
		JWKS:   jwksctrl.NewJWKSController(publisher),
		Health: healthctrl.NewHealthController(repo),
	})
	return &fixture{handler: h, valid: valid, expired: expired}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestIndex_Greeting(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Howdy!", rec.Body.String())
}

func TestJWKS_OnlyValidKeyPublished(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/.well-known/jwks.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc jwtx.JWKS
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Keys, 1)
	require.Equal(t, f.valid.KID, doc.Keys[0].Kid)
	require.Equal(t, "RSA", doc.Keys[0].Kty)
	require.Equal(t, "sig", doc.Keys[0].Use)
}

func TestAuth_NormalToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/auth", `{"username":"u","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	parsed, _, err := jwtv5.NewParser().ParseUnverified(rec.Body.String(), jwtv5.MapClaims{})
	require.NoError(t, err)
	require.Equal(t, f.valid.KID, parsed.Header["kid"])

	claims := parsed.Claims.(jwtv5.MapClaims)
	require.Equal(t, "u", claims["sub"])
	require.EqualValues(t, f.valid.ExpiresAt.Unix(), claims["exp"])
}

func TestAuth_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/auth?expired=true", `{"username":"u","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	parsed, _, err := jwtv5.NewParser().ParseUnverified(rec.Body.String(), jwtv5.MapClaims{})
	require.NoError(t, err)
	require.Equal(t, f.expired.KID, parsed.Header["kid"])

	claims := parsed.Claims.(jwtv5.MapClaims)
	require.EqualValues(t, f.expired.ExpiresAt.Unix(), claims["exp"])
	require.LessOrEqual(t, int64(claims["exp"].(float64)), time.Now().Unix())
}

func TestAuth_MissingPasswordIsClientError(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/auth", `{"username":"u"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/auth", `{"username":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotFoundAndMethodNotAllowedTexts(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/nope", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "404: NOT FOUND", rec.Body.String())

	rec = f.do(http.MethodDelete, "/auth", "")
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "405: METHOD NOT ALLOWED", rec.Body.String())
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
