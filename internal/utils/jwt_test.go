package utils

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ana@x.com", "customer", 60)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}
	if remaining := time.Until(tok.Exp); remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Errorf("expiry %v from now, want about 60m", remaining)
	}

	ident, err := ParseAccessToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if ident.UserID != 42 {
		t.Errorf("UserID = %d, want 42", ident.UserID)
	}
	if ident.Email != "ana@x.com" {
		t.Errorf("Email = %q, want ana@x.com", ident.Email)
	}
	if ident.Role != "customer" {
		t.Errorf("Role = %q, want customer", ident.Role)
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ana@x.com", "customer", 60)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if _, err := ParseAccessToken("other-secret", tok.Token); err != ErrTokenInvalid {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken("secret", 42, "ana@x.com", "customer", -1)
	if err != nil {
		t.Fatalf("NewAccessToken() error = %v", err)
	}
	if _, err := ParseAccessToken("secret", tok.Token); err != ErrTokenInvalid {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestParseAccessTokenGarbage(t *testing.T) {
	if _, err := ParseAccessToken("secret", "not.a.jwt"); err != ErrTokenInvalid {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}
