package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nectarnook/catalog-api/internal/core/domain"
)

type stubVerifier struct {
	verifyFn func(token string) (string, error)
}

func (s *stubVerifier) Register(context.Context, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubVerifier) Login(context.Context, string, string) (string, error) {
	panic("not used")
}

func (s *stubVerifier) VerifyToken(token string) (string, error) {
	return s.verifyFn(token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{
		verifyFn: func(token string) (string, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token: %q", token)
			}
			return "alice", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("username") != "alice" {
			t.Fatalf("username not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{
		verifyFn: func(token string) (string, error) {
			t.Fatalf("verify must not be called")
			return "", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{
		verifyFn: func(token string) (string, error) {
			t.Fatalf("verify must not be called")
			return "", nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RejectedToken(t *testing.T) {
	e := echo.New()
	verifier := &stubVerifier{
		verifyFn: func(token string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expired-or-forged")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth(verifier)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
