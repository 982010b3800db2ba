package auth

import (
	"strings"
	"testing"
	"time"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService_Rejections(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); err == nil {
		t.Error("accepted a secret under 16 characters")
	}
	if _, err := NewTokenService("test-secret-at-least-16-chars!!", 0); err == nil {
		t.Error("accepted a zero TTL")
	}
}

func TestIssueAndVerify(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := ts.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if subject != "user-123" {
		t.Errorf("subject = %q, want user-123", subject)
	}
}

func TestVerify_Expired(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.IssueWithTTL("user-123", -time.Minute)
	if err != nil {
		t.Fatalf("IssueWithTTL() error = %v", err)
	}
	if _, err := ts.Verify(token); err == nil {
		t.Error("accepted an expired token")
	}
}

func TestVerify_Tampered(t *testing.T) {
	ts := newTokenService(t)

	token, err := ts.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	tampered := strings.Join(parts, ".")

	if _, err := ts.Verify(tampered); err == nil {
		t.Error("accepted a tampered token")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	ts := newTokenService(t)
	other, err := NewTokenService("a-completely-different-secret!!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, err := other.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := ts.Verify(token); err == nil {
		t.Error("accepted a token signed with another key")
	}
}

func TestVerify_Garbage(t *testing.T) {
	ts := newTokenService(t)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := ts.Verify(tok); err == nil {
			t.Errorf("accepted malformed token %q", tok)
		}
	}
}
