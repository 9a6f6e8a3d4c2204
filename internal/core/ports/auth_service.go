package ports

import (
	"context"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

// RegisterInput carries a new account request.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// AuthService defines the credential use cases.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed identity token. Unknown username and wrong
	// password produce the identical error so responses cannot be used
	// to enumerate accounts.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ChangeRole sets the target user's role. Callers are expected to
	// have passed the Admin role check before invoking it.
	ChangeRole(ctx context.Context, actor, targetID, newRole string) error
}
