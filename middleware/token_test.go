package middleware

import (
	"testing"
	"time"
)

func TestIssueAndParseToken(t *testing.T) {
	JWTSecret = "test-secret"
	t.Cleanup(func() { JWTSecret = "" })

	token, err := IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want user-123", claims.UserID)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 24*time.Hour {
		t.Errorf("token expiry %v from now, want ~24h", ttl)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	JWTSecret = "test-secret"
	t.Cleanup(func() { JWTSecret = "" })

	token, err := IssueToken("user-123")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	JWTSecret = "other-secret"
	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}

func TestIssueToken_MissingSecret(t *testing.T) {
	JWTSecret = ""
	if _, err := IssueToken("user-123"); err == nil {
		t.Error("IssueToken succeeded without a secret")
	}
}

func TestBlacklist(t *testing.T) {
	b := NewBlacklist()

	if b.Contains("tok") {
		t.Error("empty blacklist contains token")
	}

	b.Revoke("tok", time.Now().Add(time.Hour))
	if !b.Contains("tok") {
		t.Error("revoked token not found")
	}

	b.Revoke("stale", time.Now().Add(-time.Minute))
	if b.Contains("stale") {
		t.Error("expired revocation still active")
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d after pruning, want 1", b.Len())
	}
}
