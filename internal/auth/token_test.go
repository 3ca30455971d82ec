package auth

import (
	"testing"
	"time"
)

func TestVisitorToken_RoundTrip(t *testing.T) {
	tok, err := SignVisitorToken("01VISITOR0000000000000000", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := ParseVisitorToken(tok, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != "01VISITOR0000000000000000" {
		t.Fatalf("wrong subject: %q", got)
	}
}

func TestVisitorToken_WrongSecret(t *testing.T) {
	tok, err := SignVisitorToken("01VISITOR0000000000000000", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseVisitorToken(tok, "other-secret"); err == nil {
		t.Fatalf("expected rejection with a wrong secret")
	}
}

func TestVisitorToken_Expired(t *testing.T) {
	tok, err := SignVisitorToken("01VISITOR0000000000000000", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseVisitorToken(tok, "test-secret"); err == nil {
		t.Fatalf("expected rejection of an expired token")
	}
}

func TestVisitorToken_Garbage(t *testing.T) {
	if _, err := ParseVisitorToken("not.a.token", "test-secret"); err == nil {
		t.Fatalf("expected rejection of malformed input")
	}
}
