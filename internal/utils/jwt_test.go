package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "susan@seller.co.za", "seller", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if !tok.Exp.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", tok.Exp)
	}

	email, role, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if email != "susan@seller.co.za" {
		t.Errorf("email = %q", email)
	}
	if role != "seller" {
		t.Errorf("role = %q", role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret-a", "x@y.co.za", "buyer", 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, _, err := ParseAccessToken("secret-b", tok.Token); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("secret", "x@y.co.za", "buyer", -1)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, _, err := ParseAccessToken("secret", tok.Token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestAccessTokenGarbage(t *testing.T) {
	if _, _, err := ParseAccessToken("secret", "not.a.jwt"); err == nil {
		t.Fatal("expected parse failure")
	}
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("two refresh tokens must not collide")
	}
	if len(a.Raw) != 96 {
		t.Errorf("raw length = %d, want 96 hex chars", len(a.Raw))
	}
	if !a.Exp.After(time.Now().Add(29 * 24 * time.Hour)) {
		t.Errorf("expiry too soon: %v", a.Exp)
	}
}

func TestHashRefreshRawStable(t *testing.T) {
	h1 := HashRefreshRaw("abc")
	h2 := HashRefreshRaw("abc")
	if h1 != h2 {
		t.Fatal("hash must be deterministic")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
	if h1 == HashRefreshRaw("abd") {
		t.Error("distinct inputs hashed equal")
	}
}
