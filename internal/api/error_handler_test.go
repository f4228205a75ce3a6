package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"username too short", domain.ErrUsernameTooShort, http.StatusBadRequest},
		{"username invalid chars", domain.ErrUsernameInvalidChars, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"incorrect password", domain.ErrIncorrectPassword, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"incident not found", domain.ErrIncidentNotFound, http.StatusNotFound},
		{"ticket not found", domain.ErrTicketNotFound, http.StatusNotFound},
		{"empty description", domain.ErrEmptyDescription, http.StatusBadRequest},
		{"invalid severity", domain.ErrInvalidSeverity, http.StatusBadRequest},
		{"negative duration", domain.ErrNegativeDuration, http.StatusBadRequest},
		{"unknown advice topic", domain.ErrUnknownAdviceTopic, http.StatusBadRequest},
		{"advisor key invalid", domain.ErrAdvisorKeyInvalid, http.StatusBadGateway},
		{"advisor rate limited", domain.ErrAdvisorRateLimited, http.StatusTooManyRequests},
		{"advisor upstream", domain.ErrAdvisorUpstream, http.StatusBadGateway},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body["error"] == "" {
				t.Fatalf("expected error message in body")
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationMessageVerbatim(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrUsernameTooShort, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error"] != domain.ErrUsernameTooShort.Error() {
		t.Fatalf("validation message must surface verbatim, got %q", body["error"])
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: connection reset"), c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error"] != "internal server error" {
		t.Fatalf("internal cause must not leak, got %q", body["error"])
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
