package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestOTPTokenValidity(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name    string
		token   OTPToken
		isValid bool
	}{
		{
			name:    "fresh unused token",
			token:   OTPToken{IsUsed: false, ExpiresAt: now.Add(10 * time.Minute)},
			isValid: true,
		},
		{
			name:    "used token",
			token:   OTPToken{IsUsed: true, ExpiresAt: now.Add(10 * time.Minute)},
			isValid: false,
		},
		{
			name:    "expired token",
			token:   OTPToken{IsUsed: false, ExpiresAt: now.Add(-1 * time.Minute)},
			isValid: false,
		},
		{
			name:    "used and expired",
			token:   OTPToken{IsUsed: true, ExpiresAt: now.Add(-1 * time.Minute)},
			isValid: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.IsValid(now); got != tc.isValid {
				t.Errorf("IsValid = %v, expected %v", got, tc.isValid)
			}
		})
	}
}

func TestOTPTokenExpiryBoundary(t *testing.T) {
	now := time.Now()
	token := OTPToken{ExpiresAt: now}
	// Exactly at expiry the token is still valid; only strictly after is it expired.
	if token.IsExpired(now) {
		t.Error("token should not be expired exactly at expires_at")
	}
	if !token.IsExpired(now.Add(time.Nanosecond)) {
		t.Error("token should be expired after expires_at")
	}
}

func TestGenerateOTP(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateOTP(length)
		if err != nil {
			t.Fatalf("GenerateOTP(%d) error: %v", length, err)
		}
		if len(code) != length {
			t.Errorf("GenerateOTP(%d) returned %q with length %d", length, code, len(code))
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Errorf("GenerateOTP(%d) returned non-digit %q", length, code)
				break
			}
		}
	}
}

func TestGenerateResetToken(t *testing.T) {
	token, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}
	// 64 bytes base64url without padding is 86 characters.
	if len(token) != 86 {
		t.Errorf("expected 86-char token, got %d", len(token))
	}
	for _, c := range token {
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			t.Errorf("token contains non-URL-safe character %q", c)
			break
		}
	}

	other, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}
	if token == other {
		t.Error("two generated tokens should not collide")
	}
}

func TestPasswordResetTokenValidity(t *testing.T) {
	now := time.Now()
	token := PasswordResetToken{ExpiresAt: now.Add(24 * time.Hour)}
	if !token.IsValid(now) {
		t.Error("fresh token should be valid")
	}
	token.IsUsed = true
	if token.IsValid(now) {
		t.Error("used token should not be valid")
	}
}

func TestProfileDisplayID(t *testing.T) {
	id, err := bson.ObjectIDFromHex("64f1c0ffee1234567890abcd")
	if err != nil {
		t.Fatal(err)
	}
	got := ProfileDisplayID(RoleStudent, id)
	if got != "STU-90ABCD" {
		t.Errorf("expected STU-90ABCD, got %s", got)
	}
	if ProfileDisplayID(RoleTeacher, id) != "TEA-90ABCD" {
		t.Errorf("unexpected teacher id: %s", ProfileDisplayID(RoleTeacher, id))
	}
}
