package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/planner/pkg/httpcontext"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func run(authorization string) (*fasthttp.RequestCtx, string) {
	var rc fasthttp.RequestCtx
	if authorization != "" {
		rc.Request.Header.Set("Authorization", authorization)
	}
	var seen string
	JWTAuth(secret, nil)(func(ctx *fasthttp.RequestCtx) {
		seen = httpcontext.OwnerID(ctx)
	})(&rc)
	return &rc, seen
}

func TestJWTAuthAcceptsUserID(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	rc, owner := run("Bearer " + token)
	if owner != "u1" {
		t.Fatalf("expected owner u1, got %q (status %d)", owner, rc.Response.StatusCode())
	}
}

func TestJWTAuthFallsBackToSubject(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "u2"})
	if _, owner := run(token); owner != "u2" {
		t.Fatalf("expected owner u2, got %q", owner)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	cases := map[string]string{
		"missing":    "",
		"garbage":    "Bearer not-a-token",
		"wrong key":  "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": "u1"}),
		"no subject": "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"role": "x"}),
		"expired": "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}),
		"none alg": "Bearer " + sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": "u1"}),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rc, owner := run(header)
			if owner != "" {
				t.Fatalf("handler must not run, saw owner %q", owner)
			}
			if rc.Response.StatusCode() != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rc.Response.StatusCode())
			}
		})
	}
}
