package authz

import (
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

// AuthorizeMutation decides whether the caller may mutate a specific
// book. The decision is three-way so the caller can choose how much to
// disclose: resource absent, caller not the owner, or allowed.
//
//   - Admin may mutate any book.
//   - Author may mutate only books whose OwnerUsername matches the
//     token subject.
//   - Every other role is denied outright.
func AuthorizeMutation(claims *token.Claims, book *domain.Book) domain.AccessDecision {
	if claims == nil {
		return domain.Deny(domain.DenyNotAuthenticated)
	}
	if book == nil {
		return domain.Deny(domain.DenyResourceNotFound)
	}
	switch claims.Role {
	case domain.RoleAdmin:
		return domain.Allow()
	case domain.RoleAuthor:
		if book.OwnerUsername == claims.Subject {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyNotOwner)
	case domain.RoleReader:
		return domain.Deny(domain.DenyInsufficientRole)
	}
	return domain.Deny(domain.DenyInsufficientRole)
}
