package auth

import (
	"testing"
	"time"

	"ewastemap/internal/model"
)

func TestIssueAndValidate(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)

	user := &model.User{ID: 7, Username: "admin", Role: model.RoleAdmin}
	token, err := m.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != model.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Error("admin claims should report IsAdmin")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-a", time.Hour)
	verifier := NewSessionManager("secret-b", time.Hour)

	token, err := issuer.Issue(&model.User{ID: 1, Username: "user", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := verifier.Validate(token); err == nil {
		t.Fatal("token signed with different secret should fail validation")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewSessionManager("test-secret", -time.Minute)

	token, err := m.Issue(&model.User{ID: 1, Username: "user", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := m.Validate(token); err == nil {
		t.Fatal("expired token should fail validation")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour)
	if _, err := m.Validate("not-a-token"); err == nil {
		t.Fatal("garbage token should fail validation")
	}
}
