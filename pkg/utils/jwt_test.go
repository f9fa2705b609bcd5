package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager() *JWTManager {
	return NewJWTManager("test-secret", time.Hour, 24*time.Hour)
}

func TestValidateAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()
	storeID := uuid.New()

	token, err := m.GenerateAccessToken(userID, storeID, "cashier@duka.co.ke", "cashier")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.StoreID != storeID {
		t.Errorf("StoreID = %s, want %s", claims.StoreID, storeID)
	}
	if claims.Role != "cashier" {
		t.Errorf("Role = %q, want cashier", claims.Role)
	}
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	m := newTestManager()
	refresh, err := m.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token validated as an access token")
	}
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	m := newTestManager()
	access, err := m.GenerateAccessToken(uuid.New(), uuid.New(), "cashier@duka.co.ke", "cashier")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Fatal("access token validated as a refresh token")
	}
}

func TestValidateRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	got, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("user ID = %s, want %s", got, userID)
	}
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken(uuid.New(), uuid.New(), "cashier@duka.co.ke", "cashier")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}
