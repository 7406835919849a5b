package service

import (
	"context"
	"fmt"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/models"
	"learnhub/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// PasswordService implements the three-step reset flow (request OTP, verify
// OTP, set new password) plus the authenticated change-password variant.
type PasswordService struct {
	userRepo *repository.UserRepository
	tokens   *TokenService
	mail     *MailService
	cfg      *config.Config
}

func NewPasswordService(cfg *config.Config, userRepo *repository.UserRepository, tokens *TokenService, mail *MailService) *PasswordService {
	return &PasswordService{
		userRepo: userRepo,
		tokens:   tokens,
		mail:     mail,
		cfg:      cfg,
	}
}

// RequestReset issues a reset OTP and queues the email. An unknown address
// is silently accepted so the endpoint cannot be used to probe for accounts.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Printf("password reset requested for unknown address")
		return nil
	}

	otp, err := s.tokens.IssueOTP(ctx, user.ID, models.PurposePasswordReset)
	if err != nil {
		return err
	}
	s.mail.SendPasswordResetOTP(ctx, user, otp.Token, s.cfg.OTPExpiryMinutes)
	return nil
}

// VerifyResetOTP consumes the submitted code. A true result opens the
// time-boxed window during which Reset will accept a new password.
func (s *PasswordService) VerifyResetOTP(ctx context.Context, email, code string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return s.tokens.VerifyOTP(ctx, user.ID, code, models.PurposePasswordReset, true)
}

// Reset sets the new password, provided an OTP of the reset lineage was
// consumed within the window. All reset tokens are retired afterwards.
func (s *PasswordService) Reset(ctx context.Context, email, newPassword string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	ok, err := s.tokens.HasRecentlyVerified(ctx, user.ID, models.PurposePasswordReset)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %s", err)
	}
	if err := s.userRepo.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return false, err
	}

	if err := s.tokens.InvalidateOTPs(ctx, user.ID, models.PurposePasswordReset); err != nil {
		log.Printf("error retiring reset tokens for %s: %s", email, err)
	}
	return true, nil
}

// RequestChange starts the authenticated change-password flow by mailing a
// confirmation OTP to the logged-in user.
func (s *PasswordService) RequestChange(ctx context.Context, user *models.User, currentPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	otp, err := s.tokens.IssueOTP(ctx, user.ID, models.PurposeChangePassword)
	if err != nil {
		return err
	}
	s.mail.SendChangePasswordOTP(ctx, user, otp.Token, s.cfg.OTPExpiryMinutes)
	return nil
}

// ConfirmChange consumes the change-password OTP and applies the new
// password in one call.
func (s *PasswordService) ConfirmChange(ctx context.Context, user *models.User, code, newPassword string) (bool, error) {
	ok, err := s.tokens.VerifyOTP(ctx, user.ID, code, models.PurposeChangePassword, true)
	if err != nil || !ok {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %s", err)
	}
	if err := s.userRepo.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return false, err
	}
	return true, nil
}

// RequestResetLink is the link-style alternative: a long token mailed as a
// frontend URL, consumed in a single confirm step.
func (s *PasswordService) RequestResetLink(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token, err := s.tokens.IssueResetToken(ctx, user.ID)
	if err != nil {
		return err
	}
	s.mail.SendResetLink(ctx, user, token.Token)
	return nil
}

// ConfirmResetLink consumes the long token and sets the new password.
func (s *PasswordService) ConfirmResetLink(ctx context.Context, email, token, newPassword string) (bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	ok, err := s.tokens.VerifyResetToken(ctx, user.ID, token, true)
	if err != nil || !ok {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("error hashing password: %s", err)
	}
	if err := s.userRepo.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		return false, err
	}
	return true, nil
}
