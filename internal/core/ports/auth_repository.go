package ports

import (
	"context"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

// AuthRepository defines the interface for user identity persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole atomically changes a user's role, but only while the
	// stored role still equals expected; a lost race surfaces as
	// domain.ErrRoleConflict so the caller can retry.
	UpdateRole(ctx context.Context, id string, expected, next domain.Role) error
}
