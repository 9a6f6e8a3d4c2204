package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookhaven/catalog-system/internal/core/domain"
	"github.com/bookhaven/catalog-system/internal/core/token"
)

func TestAccessControl_VerifyToken(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	access := NewAccessControl(token.NewVerifier("secret"), newStubBookRepo())

	signed, err := issuer.Issue(&domain.User{Username: "alice", Role: domain.RoleAuthor})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := access.VerifyToken(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}

	if _, err := access.VerifyToken(""); err != token.ErrTokenMalformed {
		t.Fatalf("empty token: expected ErrTokenMalformed, got %v", err)
	}
}

func TestAccessControl_CheckMutateBook_Ordering(t *testing.T) {
	repo := newStubBookRepo()
	access := NewAccessControl(token.NewVerifier("secret"), repo)

	book, _ := repo.Create(context.Background(), &domain.Book{Title: "X", OwnerUsername: "alice"})

	// Role check first: a Reader is denied without a store lookup, so a
	// missing id still reads as a role denial.
	_, decision, err := access.CheckMutateBook(context.Background(), readerClaims(), "404")
	if err != nil || decision.Allowed || decision.Reason != domain.DenyInsufficientRole {
		t.Fatalf("expected insufficient_role, got %+v err=%v", decision, err)
	}

	// Then existence.
	_, decision, err = access.CheckMutateBook(context.Background(), adminClaims(), "404")
	if err != nil || decision.Reason != domain.DenyResourceNotFound {
		t.Fatalf("expected resource_not_found, got %+v err=%v", decision, err)
	}

	// Then ownership.
	_, decision, err = access.CheckMutateBook(context.Background(), authorClaims("bob"), book.ID)
	if err != nil || decision.Reason != domain.DenyNotOwner {
		t.Fatalf("expected not_owner, got %+v err=%v", decision, err)
	}

	got, decision, err := access.CheckMutateBook(context.Background(), authorClaims("alice"), book.ID)
	if err != nil || !decision.Allowed {
		t.Fatalf("expected allow, got %+v err=%v", decision, err)
	}
	if got == nil || got.ID != book.ID {
		t.Fatalf("allowed check must return the book")
	}
}
