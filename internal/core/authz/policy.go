// Package authz holds the static access-control policy: which roles may
// perform which operations, and the ownership rule for mutating books.
package authz

import (
	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

// Operation identifies a policy-controlled action.
type Operation string

const (
	OpChangeRole Operation = "change_role"
	OpAddBook    Operation = "add_book"
	OpMutateBook Operation = "mutate_book"
)

// policy is the fixed per-operation role table. Operations absent from
// the table deny every role; roles absent from an entry are denied.
var policy = map[Operation]map[domain.Role]struct{}{
	OpChangeRole: roleSet(domain.RoleAdmin),
	OpAddBook:    roleSet(domain.RoleAdmin, domain.RoleAuthor),
	OpMutateBook: roleSet(domain.RoleAdmin, domain.RoleAuthor),
}

func roleSet(roles ...domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Authorize decides whether the caller's role permits op. A nil claims
// value means the caller never authenticated.
func Authorize(claims *token.Claims, op Operation) domain.AccessDecision {
	if claims == nil {
		return domain.Deny(domain.DenyNotAuthenticated)
	}
	if _, ok := policy[op][claims.Role]; !ok {
		return domain.Deny(domain.DenyInsufficientRole)
	}
	return domain.Allow()
}
