package models

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// OTP purposes. A lineage of tokens is scoped per (user, purpose).
const (
	PurposePasswordReset     = "password_reset"
	PurposeEmailVerification = "email_verification"
	PurposeChangePassword    = "change_password"
)

func IsValidPurpose(purpose string) bool {
	switch purpose {
	case PurposePasswordReset, PurposeEmailVerification, PurposeChangePassword:
		return true
	}
	return false
}

// OTPToken is a short numeric code gating a sensitive action. Tokens are
// consumed exactly once and kept after use or expiry as an audit trail.
type OTPToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Token     string        `bson:"token" json:"-"`
	Purpose   string        `bson:"purpose" json:"purpose"`
	IsUsed    bool          `bson:"isUsed" json:"isUsed"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UsedAt    time.Time     `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	ExpiresAt time.Time     `bson:"expiresAt" json:"expiresAt"`
}

func (t *OTPToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// IsValid reports whether the token is still consumable: not used, not expired.
func (t *OTPToken) IsValid(now time.Time) bool {
	return !t.IsUsed && !t.IsExpired(now)
}

// PasswordResetToken is the long link-style alternative to the OTP flow.
type PasswordResetToken struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Token     string        `bson:"token" json:"-"`
	IsUsed    bool          `bson:"isUsed" json:"isUsed"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UsedAt    time.Time     `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	ExpiresAt time.Time     `bson:"expiresAt" json:"expiresAt"`
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *PasswordResetToken) IsValid(now time.Time) bool {
	return !t.IsUsed && !t.IsExpired(now)
}

// GenerateOTP returns a fixed-length decimal code from a cryptographically
// secure source. Length must be positive.
func GenerateOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits), nil
}

// GenerateResetToken returns a URL-safe token carrying 64 bytes of entropy.
func GenerateResetToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
