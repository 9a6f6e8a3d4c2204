package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

func renderError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", token.ErrTokenExpired, http.StatusUnauthorized},
		{"token invalid", token.ErrTokenInvalid, http.StatusUnauthorized},
		{"not authenticated", domain.ErrNotAuthenticated, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"book not found", domain.ErrBookNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"role conflict", domain.ErrRoleConflict, http.StatusConflict},
		{"invalid role", domain.ErrInvalidRole, http.StatusBadRequest},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := renderError(t, tt.err)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestErrorHandler_ValidationIssues(t *testing.T) {
	issues := domain.ValidationIssues{}.
		Issue("title", "is required").
		Issue("price", "must not be negative")

	rec := renderError(t, issues)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "title") || !strings.Contains(body, "price") {
		t.Fatalf("response must list every issue: %s", body)
	}
}

func TestErrorHandler_HidesInternalDetails(t *testing.T) {
	rec := renderError(t, errors.New("pq: connection refused on 10.0.0.3"))
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Fatalf("internal error details must not leak: %s", rec.Body.String())
	}
}

func TestErrorHandler_UniformForbidden(t *testing.T) {
	// Role and ownership denials render identically so a 403 never
	// reveals resource ownership.
	roleDenied := renderError(t, domain.Deny(domain.DenyInsufficientRole).Err())
	ownerDenied := renderError(t, domain.Deny(domain.DenyNotOwner).Err())

	if roleDenied.Code != ownerDenied.Code || roleDenied.Body.String() != ownerDenied.Body.String() {
		t.Fatalf("403 responses must be indistinguishable: %s vs %s",
			roleDenied.Body.String(), ownerDenied.Body.String())
	}
}
