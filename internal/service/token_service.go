package service

import (
	"context"
	"log"
	"time"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TokenService owns the OTP and reset-token lineages. Issuing always retires
// prior unused tokens of the same scope, so at most one token per
// (user, purpose) is consumable at any time.
type TokenService struct {
	otpRepo   *repository.OTPTokenRepository
	resetRepo *repository.PasswordResetTokenRepository

	otpLength     int
	otpTTL        time.Duration
	resetTokenTTL time.Duration
	usedWindow    time.Duration
}

func NewTokenService(cfg *config.Config, otpRepo *repository.OTPTokenRepository, resetRepo *repository.PasswordResetTokenRepository) *TokenService {
	return &TokenService{
		otpRepo:       otpRepo,
		resetRepo:     resetRepo,
		otpLength:     cfg.OTPLength,
		otpTTL:        time.Duration(cfg.OTPExpiryMinutes) * time.Minute,
		resetTokenTTL: time.Duration(cfg.ResetTokenExpiryHours) * time.Hour,
		usedWindow:    time.Duration(cfg.ResetWindowMinutes) * time.Minute,
	}
}

// IssueOTP mints a fresh code for the lineage, invalidating any outstanding
// ones in the same write.
func (s *TokenService) IssueOTP(ctx context.Context, userID bson.ObjectID, purpose string) (*models.OTPToken, error) {
	code, err := models.GenerateOTP(s.otpLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	token := &models.OTPToken{
		UserID:    userID,
		Token:     code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL),
	}
	if err := s.otpRepo.CreateInvalidatingPrior(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// VerifyOTP checks the submitted code against the lineage. All failure modes
// (no such token, already used, expired) collapse into a plain false so the
// caller cannot leak which one occurred. With consume set, a match is marked
// used before returning.
func (s *TokenService) VerifyOTP(ctx context.Context, userID bson.ObjectID, code, purpose string, consume bool) (bool, error) {
	token, err := s.otpRepo.FindUnused(ctx, userID, code, purpose)
	if err != nil {
		return false, err
	}
	if token == nil || !token.IsValid(time.Now()) {
		return false, nil
	}

	if consume {
		if err := s.otpRepo.MarkUsed(ctx, token.ID); err != nil {
			return false, err
		}
	}
	return true, nil
}

// HasRecentlyVerified reports whether the user consumed a token of the given
// purpose within the configured window. A password reset is only honored
// while this holds.
func (s *TokenService) HasRecentlyVerified(ctx context.Context, userID bson.ObjectID, purpose string) (bool, error) {
	since := time.Now().Add(-s.usedWindow)
	return s.otpRepo.HasUsedSince(ctx, userID, purpose, since)
}

func (s *TokenService) InvalidateOTPs(ctx context.Context, userID bson.ObjectID, purpose string) error {
	return s.otpRepo.InvalidateAll(ctx, userID, purpose)
}

// IssueResetToken mints the long link-style token. One active per user.
func (s *TokenService) IssueResetToken(ctx context.Context, userID bson.ObjectID) (*models.PasswordResetToken, error) {
	raw, err := models.GenerateResetToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	token := &models.PasswordResetToken{
		UserID:    userID,
		Token:     raw,
		CreatedAt: now,
		ExpiresAt: now.Add(s.resetTokenTTL),
	}
	if err := s.resetRepo.CreateInvalidatingPrior(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// VerifyResetToken mirrors VerifyOTP for the link-style lineage.
func (s *TokenService) VerifyResetToken(ctx context.Context, userID bson.ObjectID, raw string, consume bool) (bool, error) {
	token, err := s.resetRepo.FindUnused(ctx, userID, raw)
	if err != nil {
		return false, err
	}
	if token == nil || !token.IsValid(time.Now()) {
		return false, nil
	}

	if consume {
		if err := s.resetRepo.MarkUsed(ctx, token.ID); err != nil {
			log.Printf("error consuming reset token: %s", err)
			return false, err
		}
	}
	return true, nil
}
