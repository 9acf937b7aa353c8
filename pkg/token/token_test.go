package token

import (
	"testing"
	"time"
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		name     string
		claims   AccessClaims
		ownerID  uint
		expected bool
	}{
		{"owner", AccessClaims{UserID: 7, Role: "user"}, 7, true},
		{"other user", AccessClaims{UserID: 7, Role: "user"}, 8, false},
		{"admin on foreign resource", AccessClaims{UserID: 1, Role: RoleAdmin}, 8, true},
		{"admin on own resource", AccessClaims{UserID: 1, Role: RoleAdmin}, 1, true},
		{"empty role", AccessClaims{UserID: 2}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.CanModify(tt.ownerID); got != tt.expected {
				t.Errorf("CanModify(%d) = %v, want %v", tt.ownerID, got, tt.expected)
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Minute)

	signed, err := m.IssueAccessToken(42, "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	claims, err := m.VerifyAccessToken(signed)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour, time.Minute)
	verifier := NewManager("secret-b", time.Hour, time.Minute)

	signed, err := issuer.IssueAccessToken(1, "user")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	if _, err := verifier.VerifyAccessToken(signed); err == nil {
		t.Error("VerifyAccessToken() accepted token signed with another secret")
	}
}

func TestAccessTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, time.Minute)

	signed, err := m.IssueAccessToken(1, "user")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	if _, err := m.VerifyAccessToken(signed); err == nil {
		t.Error("VerifyAccessToken() accepted expired token")
	}
}

func TestResetTokenPurposeChecked(t *testing.T) {
	m := NewManager("test-secret", time.Hour, time.Minute)

	reset, err := m.IssueResetToken("user@example.com")
	if err != nil {
		t.Fatalf("IssueResetToken() error = %v", err)
	}

	claims, err := m.VerifyResetToken(reset)
	if err != nil {
		t.Fatalf("VerifyResetToken() error = %v", err)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@example.com")
	}

	// An access token must not pass reset verification: it carries no purpose tag.
	access, err := m.IssueAccessToken(1, "user")
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}
	if _, err := m.VerifyResetToken(access); err == nil {
		t.Error("VerifyResetToken() accepted a token without the reset purpose")
	}
}
