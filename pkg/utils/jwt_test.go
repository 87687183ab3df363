package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := GenerateToken("user-42", []string{"admin", "reports"})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}

	if claims.UserID != "user-42" {
		t.Errorf("user id = %q", claims.UserID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "admin" {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	SetSecret("first-secret")
	token, err := GenerateToken("user-42", nil)
	if err != nil {
		t.Fatal(err)
	}

	SetSecret("rotated-secret")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with the old secret validated")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	SetSecret("test-secret")
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token validated")
	}
}
