package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/service"
)

func newTokens(t *testing.T) *service.JWTService {
	t.Helper()
	tokens, err := service.NewJWTService("secret", time.Minute)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	return tokens
}

func runAuth(t *testing.T, header string) (error, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(newTokens(t))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	signed, err := newTokens(t).Issue("demo")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	err, called, c := runAuth(t, "Bearer "+signed)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(SubjectKey) != "demo" {
		t.Fatalf("subject not set, got %v", c.Get(SubjectKey))
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	signed, _ := newTokens(t).Issue("demo")

	err, called, _ := runAuth(t, "bearer "+signed)
	if err != nil || !called {
		t.Fatalf("expected lowercase scheme to be accepted, err=%v", err)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	other, err := service.NewJWTService("other-secret", time.Minute)
	if err != nil {
		t.Fatalf("new jwt service: %v", err)
	}
	foreign, _ := other.Issue("demo")

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"no token":        "Bearer",
		"empty token":     "Bearer   ",
		"malformed token": "Bearer not-a-token",
		"foreign secret":  "Bearer " + foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			err, called, _ := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}
