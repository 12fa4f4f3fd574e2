package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/oguarni/web-2-sub000/internal/domain"
)

func TestAuthenticate(t *testing.T) {
	var gotActor domain.Actor
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotActor, _ = actorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(testSecret)(next)

	t.Run("valid token yields the actor", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, 42, domain.RoleManager))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !called {
			t.Fatalf("next handler not reached: %d %s", rr.Code, rr.Body.String())
		}
		if gotActor.ID != 42 || gotActor.Role != domain.RoleManager {
			t.Fatalf("unexpected actor: %+v", gotActor)
		}
	})

	t.Run("rejects missing and malformed headers", func(t *testing.T) {
		for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if called || rr.Code != http.StatusUnauthorized {
				t.Fatalf("header %q: expected 401 without calling next, got %d", header, rr.Code)
			}
		}
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		claims := tokenClaims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "2",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if called || rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		claims := tokenClaims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "2",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		called = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if called || rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("rejects unknown roles and bad subjects", func(t *testing.T) {
		for _, tc := range []struct{ sub, role string }{
			{sub: "2", role: "superuser"},
			{sub: "not-a-number", role: "user"},
			{sub: "0", role: "user"},
		} {
			claims := tokenClaims{
				Role: tc.role,
				RegisteredClaims: jwt.RegisteredClaims{
					Subject:   tc.sub,
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			if err != nil {
				t.Fatalf("sign: %v", err)
			}

			called = false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if called || rr.Code != http.StatusUnauthorized {
				t.Fatalf("sub=%s role=%s: expected 401, got %d", tc.sub, tc.role, rr.Code)
			}
		}
	})
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	h := testRouter(t, RouterConfig{Reservations: &fakeReservationAPI{}})

	rr := doRequest(t, h, http.MethodGet, "/health", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("expected caller-supplied id kept, got %q", got)
	}
}
