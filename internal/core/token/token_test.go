package token

import (
	"strings"
	"testing"
	"time"

	"github.com/bookhaven/catalog-system/internal/core/domain"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{ID: "u1", Username: "alice", Role: role}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	verifier := NewVerifier("secret")

	for _, role := range domain.Roles {
		signed, err := issuer.Issue(testUser(role))
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		claims, err := verifier.Verify(signed)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if claims.Subject != "alice" {
			t.Fatalf("expected subject alice, got %q", claims.Subject)
		}
		if claims.Role != role {
			t.Fatalf("expected role %s, got %s", role, claims.Role)
		}
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	verifier := NewVerifier("secret")

	signed, err := issuer.Issue(testUser(domain.RoleReader))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(signed); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	verifier := NewVerifier("other-secret")

	signed, err := issuer.Issue(testUser(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(signed); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	verifier := NewVerifier("secret")

	signed, err := issuer.Issue(testUser(domain.RoleReader))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 token segments, got %d", len(parts))
	}

	// Flip a character in the payload; signature no longer matches.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := verifier.Verify(tampered); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}

func TestVerify_Malformed(t *testing.T) {
	verifier := NewVerifier("secret")
	if _, err := verifier.Verify("not-a-token"); err != ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestIssue_RoleSnapshot(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	verifier := NewVerifier("secret")

	user := testUser(domain.RoleAuthor)
	signed, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// A later role change does not affect already-issued tokens; only
	// re-authentication picks up the new role.
	user.Role = domain.RoleReader

	claims, err := verifier.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != domain.RoleAuthor {
		t.Fatalf("expected snapshot role Author, got %s", claims.Role)
	}
}
