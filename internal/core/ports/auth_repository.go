package ports

import (
	"context"

	"github.com/mdip/intelligence-platform/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
// Implementations must enforce username uniqueness atomically at insert time
// (a unique index, not a pre-check) and report violations as ErrUserExists.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
