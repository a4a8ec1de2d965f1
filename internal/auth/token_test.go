package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"exam-scoring-service/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", "exam-scoring", time.Hour)
	tok, err := svc.Issue(domain.Identity{UserID: "u1", Name: "Alice", Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	who, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if who.UserID != "u1" || who.Name != "Alice" || who.Role != domain.RoleStudent {
		t.Fatalf("unexpected identity %+v", who)
	}
}

func TestParseRejectsBadTokens(t *testing.T) {
	svc := NewTokenService("secret", "exam-scoring", time.Hour)
	other := NewTokenService("other-secret", "exam-scoring", time.Hour)
	foreign, _ := other.Issue(domain.Identity{UserID: "u1"})

	expired := NewTokenService("secret", "exam-scoring", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _ := expired.Issue(domain.Identity{UserID: "u1"})

	wrongIssuer, _ := NewTokenService("secret", "someone-else", time.Hour).Issue(domain.Identity{UserID: "u1"})

	for name, tok := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
		"wrong issuer": wrongIssuer,
	} {
		if _, err := svc.Parse(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", name, err)
		}
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	if _, err := NewTokenService("secret", "x", time.Hour).Issue(domain.Identity{}); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	if who := IdentityFromContext(ctx); who.UserID != "" {
		t.Fatalf("expected anonymous identity, got %+v", who)
	}
	ctx = WithIdentity(ctx, domain.Identity{UserID: "u1", Role: domain.RoleAdmin})
	if who := IdentityFromContext(ctx); who.UserID != "u1" || who.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity %+v", who)
	}
}
