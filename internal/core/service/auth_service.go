package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdip/intelligence-platform/internal/core/domain"
	"github.com/mdip/intelligence-platform/internal/core/ports"
)

// AuthService implements registration and login against the account store.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register validates the username and password shape rules in order, hashes
// the password with a fresh bcrypt salt, and inserts the account. Username
// uniqueness is enforced by the repository's unique index; a duplicate insert
// surfaces as ErrUserExists with no mutation. A role outside {user, admin}
// silently falls back to user.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.Account, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.NormalizeRole(role),
		CreatedAt:    time.Now().UTC(),
	}

	return s.repo.Create(ctx, account)
}

// Login verifies a presented password against the stored hash and returns a
// signed token plus the account identity on success. Empty inputs are a
// guaranteed no-match and never reach the hash comparison. Unknown usernames
// are reported distinctly from password mismatches.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Account, error) {
	if username == "" {
		return "", nil, domain.ErrUserNotFound
	}
	if password == "" {
		return "", nil, domain.ErrIncorrectPassword
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrIncorrectPassword
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, err
	}

	return token, account, nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"role":     account.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
