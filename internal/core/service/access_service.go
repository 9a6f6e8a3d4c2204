package service

import (
	"context"
	"errors"

	"github.com/bookhaven/catalog-system/internal/core/authz"
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/ports"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

// AccessControl composes token verification, the role policy, and the
// ownership rule into the single decision a caller needs before touching
// the item store. One decision is produced per check and consumed once.
type AccessControl struct {
	verifier *token.Verifier
	books    ports.BookRepository
}

func NewAccessControl(verifier *token.Verifier, books ports.BookRepository) *AccessControl {
	return &AccessControl{verifier: verifier, books: books}
}

// VerifyToken validates a raw bearer token and returns its claims.
func (a *AccessControl) VerifyToken(tokenString string) (*token.Claims, error) {
	if tokenString == "" {
		return nil, token.ErrTokenMalformed
	}
	return a.verifier.Verify(tokenString)
}

// CheckOperation applies the static role policy for op.
func (a *AccessControl) CheckOperation(claims *token.Claims, op authz.Operation) domain.AccessDecision {
	return authz.Authorize(claims, op)
}

// CheckMutateBook runs the full mutation gate: role policy first, then
// resource lookup, then ownership. The returned book is non-nil only when
// the decision allows the mutation, so callers never touch an item they
// were denied on.
func (a *AccessControl) CheckMutateBook(ctx context.Context, claims *token.Claims, bookID string) (*domain.Book, domain.AccessDecision, error) {
	if decision := authz.Authorize(claims, authz.OpMutateBook); !decision.Allowed {
		return nil, decision, nil
	}

	book, err := a.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return nil, domain.Deny(domain.DenyResourceNotFound), nil
		}
		return nil, domain.AccessDecision{}, err
	}

	if decision := authz.AuthorizeMutation(claims, book); !decision.Allowed {
		return nil, decision, nil
	}
	return book, domain.Allow(), nil
}
