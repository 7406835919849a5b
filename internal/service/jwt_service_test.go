package service

import (
	"strings"
	"testing"

	"learnhub/internal/config"
	"learnhub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:         secret,
		AccessTokenHours:  1,
		RefreshTokenHours: 24,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:    bson.NewObjectID(),
		Email: "student@example.com",
		Role:  models.RoleStudent,
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := testJWTService("test-secret")
	user := testUser()

	pair, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	tests := []struct {
		name      string
		token     string
		tokenType string
	}{
		{"access", pair["access"], TokenTypeAccess},
		{"refresh", pair["refresh"], TokenTypeRefresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ParseToken(tt.token)
			if err != nil {
				t.Fatalf("ParseToken: %v", err)
			}
			if claims.UserID != user.ID.Hex() {
				t.Errorf("UserID = %q, want %q", claims.UserID, user.ID.Hex())
			}
			if claims.Email != user.Email {
				t.Errorf("Email = %q, want %q", claims.Email, user.Email)
			}
			if claims.Role != models.RoleStudent {
				t.Errorf("Role = %q, want %q", claims.Role, models.RoleStudent)
			}
			if claims.TokenType != tt.tokenType {
				t.Errorf("TokenType = %q, want %q", claims.TokenType, tt.tokenType)
			}
			if svc.RemainingTTL(claims) <= 0 {
				t.Error("expected positive remaining TTL for a fresh token")
			}
		})
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := testJWTService("secret-one").GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := testJWTService("secret-two").ParseToken(token); err == nil {
		t.Error("expected parse failure for token signed with a different secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService("test-secret")
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q): expected error", token)
		}
	}
}

func TestAccessAndRefreshTokensDiffer(t *testing.T) {
	svc := testJWTService("test-secret")
	pair, err := svc.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if pair["access"] == pair["refresh"] {
		t.Error("access and refresh tokens should not be identical")
	}
	if parts := strings.Split(pair["access"], "."); len(parts) != 3 {
		t.Errorf("access token has %d segments, want 3", len(parts))
	}
}
