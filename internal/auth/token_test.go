package auth

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), time.Hour)

	token, err := m.Issue(42, "seller", 7)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	claims, userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("user id mismatch: got %d want 42", userID)
	}
	if claims.Role != "seller" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
	if claims.SellerID != 7 {
		t.Fatalf("seller id mismatch: got %d", claims.SellerID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), -time.Minute)

	token, err := m.Issue(1, "customer", 0)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, _, err := m.Parse(token); err == nil {
		t.Fatalf("expired token must not parse")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := NewTokenManager([]byte("secret-a"), time.Hour)
	verifier := NewTokenManager([]byte("secret-b"), time.Hour)

	token, err := issuer.Issue(1, "customer", 0)
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	if _, _, err := verifier.Parse(token); err == nil {
		t.Fatalf("token signed with a different secret must not parse")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	m := NewTokenManager([]byte("test-secret"), time.Hour)
	if _, _, err := m.Parse("not.a.token"); err == nil {
		t.Fatalf("garbage token must not parse")
	}
}
