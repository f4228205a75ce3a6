package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

type stubAuthRepo struct {
	accounts map[string]*domain.Account
	nextID   int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneAccount(account)
	created.ID = r.nextID
	r.accounts[created.Username] = cloneAccount(created)
	return created, nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if a, ok := r.accounts[username]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrUserNotFound
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	account, err := svc.Register(context.Background(), "alice", "pass123", domain.RoleUser)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == 0 {
		t.Fatalf("expected assigned id, got 0")
	}
	if account.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", account.Role)
	}
	if account.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	cases := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"empty username", "", "validpass", domain.ErrUsernameTooShort},
		{"short username", "ab", "validpass", domain.ErrUsernameTooShort},
		{"comma in username", "a,b", "validpass", domain.ErrUsernameInvalidChars},
		{"space in username", "a b", "validpass", domain.ErrUsernameInvalidChars},
		{"empty password", "validname", "", domain.ErrPasswordTooShort},
		{"short password", "validname", "short", domain.ErrPasswordTooShort},
		{"two multi-byte chars", "éé", "validpass", domain.ErrUsernameTooShort},
		{"five multi-byte char password", "validname", "ééééé", domain.ErrPasswordTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.username, tc.password, domain.RoleUser); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if len(repo.accounts) != 0 {
		t.Fatalf("rejected registrations must not mutate the store")
	}
}

func TestAuthService_Register_MultiByteLengthsCountCharacters(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	// 3 characters and 6 characters respectively, though more in bytes.
	if _, err := svc.Register(context.Background(), "ééé", "éééééé", domain.RoleUser); err != nil {
		t.Fatalf("multi-byte credentials at the minimum lengths must be accepted, got %v", err)
	}
}

func TestAuthService_Register_UsernameRulesCheckedFirst(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	// Both rules violated: the username rule is reported.
	if _, err := svc.Register(context.Background(), "ab", "short", domain.RoleUser); !errors.Is(err, domain.ErrUsernameTooShort) {
		t.Fatalf("expected ErrUsernameTooShort, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	first, err := svc.Register(context.Background(), "bob", "password1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "bob", "password2", domain.RoleUser); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	stored := repo.accounts["bob"]
	if stored.PasswordHash != first.PasswordHash {
		t.Fatalf("duplicate registration must not alter the stored hash")
	}
	if stored.Role != domain.RoleAdmin {
		t.Fatalf("duplicate registration must not alter the stored role")
	}
}

func TestAuthService_Register_RoleDefault(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	account, err := svc.Register(context.Background(), "dave", "validpass", "not-a-role")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if account.Role != domain.RoleUser {
		t.Fatalf("expected role to default to user, got %s", account.Role)
	}
}

func TestAuthService_Register_HashesDifferPerCall(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	a, err := svc.Register(context.Background(), "alice", "secret1", domain.RoleUser)
	if err != nil {
		t.Fatalf("register alice failed: %v", err)
	}
	b, err := svc.Register(context.Background(), "bob", "secret1", domain.RoleUser)
	if err != nil {
		t.Fatalf("register bob failed: %v", err)
	}
	if a.PasswordHash == b.PasswordHash {
		t.Fatalf("same plaintext must produce different hashes (fresh salt per call)")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol", "s3cret99", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "carol", "s3cret99")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account == nil || account.Username != "carol" || account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username carol, got %v", claims["username"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol", "correctpw", domain.RoleUser); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "carol", "wrongpw"); !errors.Is(err, domain.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	// The account is untouched: the correct password still works.
	if _, _, err := svc.Login(context.Background(), "carol", "correctpw"); err != nil {
		t.Fatalf("expected login to still succeed, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "doesnotexist", "anything"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_EmptyInputs(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "erin", "validpass", domain.RoleUser); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "", "validpass"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for empty username, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "erin", ""); !errors.Is(err, domain.ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword for empty password, got %v", err)
	}
}
