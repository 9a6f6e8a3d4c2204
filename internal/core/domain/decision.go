package domain

// DenyReason explains why an access check failed.
type DenyReason string

const (
	DenyNotAuthenticated DenyReason = "not_authenticated"
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyNotOwner         DenyReason = "not_owner"
	DenyResourceNotFound DenyReason = "resource_not_found"
)

// AccessDecision is the immutable outcome of an authorization check.
// Reason is empty when Allowed is true.
type AccessDecision struct {
	Allowed bool
	Reason  DenyReason
}

// Allow returns a positive decision.
func Allow() AccessDecision {
	return AccessDecision{Allowed: true}
}

// Deny returns a negative decision with the given reason.
func Deny(reason DenyReason) AccessDecision {
	return AccessDecision{Allowed: false, Reason: reason}
}

// Err maps a denial to the domain error the transport layer understands.
// A missing authentication maps to ErrNotAuthenticated (401); role and
// ownership denials both map to ErrForbidden so the response never
// discloses which check failed.
func (d AccessDecision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyNotAuthenticated:
		return ErrNotAuthenticated
	case DenyResourceNotFound:
		return ErrBookNotFound
	default:
		return ErrForbidden
	}
}
