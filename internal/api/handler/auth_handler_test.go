package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

type stubAuthService struct {
	registerFunc func(ctx context.Context, username, password, role string) (*domain.Account, error)
	loginFunc    func(ctx context.Context, username, password string) (string, *domain.Account, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (*domain.Account, error) {
	return s.registerFunc(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	return s.loginFunc(ctx, username, password)
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		registerFunc: func(_ context.Context, username, password, role string) (*domain.Account, error) {
			if username != "alice" || password != "pass123" || role != "admin" {
				t.Fatalf("unexpected args: %s %s %s", username, password, role)
			}
			return &domain.Account{ID: 1, Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"pass123","role":"admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var resp struct {
		User struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.User.ID != 1 || resp.User.Username != "alice" || resp.User.Role != "admin" {
		t.Fatalf("unexpected payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not expose password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		registerFunc: func(_ context.Context, _, _, _ string) (*domain.Account, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"pass123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		registerFunc: func(_ context.Context, _, _, _ string) (*domain.Account, error) {
			return nil, domain.ErrUsernameTooShort
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(e, http.MethodPost, "/auth/register", `{"username":"ab","password":"pass123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUsernameTooShort) {
		t.Fatalf("expected ErrUsernameTooShort, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := echo.New()
	svc := &stubAuthService{
		loginFunc: func(_ context.Context, username, password string) (string, *domain.Account, error) {
			if username != "alice" || password != "pass123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", &domain.Account{ID: 1, Username: "alice", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"pass123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("expected token in response, got %q", resp.Token)
	}
	if resp.User.Role != "user" {
		t.Fatalf("expected role user, got %q", resp.User.Role)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"unknown user", domain.ErrUserNotFound},
		{"wrong password", domain.ErrIncorrectPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			svc := &stubAuthService{
				loginFunc: func(_ context.Context, _, _ string) (string, *domain.Account, error) {
					return "", nil, tc.err
				},
			}
			h := NewAuthHandler(svc)

			c, _ := newJSONContext(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"bad"}`)
			if err := h.Login(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
		})
	}
}
