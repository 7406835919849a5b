package service

import (
	"context"
	"fmt"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/events"
	"learnhub/internal/models"
)

// MailService turns notification needs into queued email events. Delivery is
// fire-and-forget: the worker draining the queue owns retries, so a false
// return only means the message never reached the broker.
type MailService struct {
	publisher events.Publisher
	fromEmail string
	feAddress string
}

func NewMailService(cfg *config.Config, publisher events.Publisher) *MailService {
	return &MailService{
		publisher: publisher,
		fromEmail: cfg.FromEmail,
		feAddress: cfg.FEAddress,
	}
}

func (s *MailService) enqueue(ctx context.Context, recipient, subject, body string) bool {
	if err := s.publisher.PublishEmailRequested(ctx, recipient, subject, body, s.fromEmail); err != nil {
		log.Printf("error queueing email to %s: %s", recipient, err)
		return false
	}
	return true
}

func (s *MailService) SendPasswordResetOTP(ctx context.Context, user *models.User, code string, expiryMinutes int) bool {
	subject := "Your Password Reset OTP"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour OTP for password reset is: %s\n\nThis OTP will expire in %d minutes.\n\nIf you did not request this, please ignore this email.",
		user.FullName(), code, expiryMinutes,
	)
	return s.enqueue(ctx, user.Email, subject, body)
}

func (s *MailService) SendVerificationOTP(ctx context.Context, user *models.User, code string, expiryMinutes int) bool {
	subject := "Verify Your Email Address"
	body := fmt.Sprintf(
		"Hello %s,\n\nWelcome aboard! Your email verification code is: %s\n\nThis code will expire in %d minutes.",
		user.FullName(), code, expiryMinutes,
	)
	return s.enqueue(ctx, user.Email, subject, body)
}

func (s *MailService) SendChangePasswordOTP(ctx context.Context, user *models.User, code string, expiryMinutes int) bool {
	subject := "Confirm Your Password Change"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour OTP for changing your password is: %s\n\nThis OTP will expire in %d minutes.\n\nIf you did not request this, please secure your account.",
		user.FullName(), code, expiryMinutes,
	)
	return s.enqueue(ctx, user.Email, subject, body)
}

// SendResetLink carries the long token as a frontend URL when a FE address
// is configured, falling back to the bare token otherwise.
func (s *MailService) SendResetLink(ctx context.Context, user *models.User, token string) bool {
	subject := "Reset Your Password"
	target := token
	if s.feAddress != "" {
		target = fmt.Sprintf("%s/reset-password?token=%s", s.feAddress, token)
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nUse the link below to reset your password:\n\n%s\n\nIf you did not request this, please ignore this email.",
		user.FullName(), target,
	)
	return s.enqueue(ctx, user.Email, subject, body)
}
