package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"learnhub/internal/config"
	"learnhub/internal/models"
)

type capturedEmail struct {
	recipient string
	subject   string
	body      string
	from      string
}

// fakePublisher records queued emails instead of touching a broker.
type fakePublisher struct {
	emails []capturedEmail
	fail   bool
}

func (f *fakePublisher) PublishEmailRequested(ctx context.Context, recipient, subject, body, from string) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.emails = append(f.emails, capturedEmail{recipient, subject, body, from})
	return nil
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, userID, email, role string) error {
	return nil
}

func (f *fakePublisher) PublishQuizSubmitted(ctx context.Context, studentID, quizID string, percentage float64, grade string) error {
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func mailFixture(fake *fakePublisher) *MailService {
	return NewMailService(&config.Config{
		FromEmail: "no-reply@learnhub.io",
		FEAddress: "https://app.learnhub.io",
	}, fake)
}

func TestSendPasswordResetOTP(t *testing.T) {
	fake := &fakePublisher{}
	svc := mailFixture(fake)
	user := &models.User{Email: "jo@example.com", FirstName: "Jo", LastName: "Smith"}

	if ok := svc.SendPasswordResetOTP(context.Background(), user, "4821", 10); !ok {
		t.Fatal("expected email to be queued")
	}
	if len(fake.emails) != 1 {
		t.Fatalf("got %d emails, want 1", len(fake.emails))
	}

	mail := fake.emails[0]
	if mail.recipient != "jo@example.com" {
		t.Errorf("recipient = %q", mail.recipient)
	}
	if mail.from != "no-reply@learnhub.io" {
		t.Errorf("from = %q", mail.from)
	}
	if !strings.Contains(mail.body, "4821") {
		t.Errorf("body does not carry the code: %q", mail.body)
	}
	if !strings.Contains(mail.body, "Jo Smith") {
		t.Errorf("body does not greet by name: %q", mail.body)
	}
	if !strings.Contains(mail.body, "10 minutes") {
		t.Errorf("body does not state the expiry: %q", mail.body)
	}
}

func TestSendResetLinkUsesFrontendURL(t *testing.T) {
	fake := &fakePublisher{}
	svc := mailFixture(fake)
	user := &models.User{Email: "jo@example.com", FirstName: "Jo"}

	if ok := svc.SendResetLink(context.Background(), user, "tok123"); !ok {
		t.Fatal("expected email to be queued")
	}
	body := fake.emails[0].body
	if !strings.Contains(body, "https://app.learnhub.io/reset-password?token=tok123") {
		t.Errorf("body does not carry the reset URL: %q", body)
	}
}

func TestSendResetLinkWithoutFrontendFallsBackToToken(t *testing.T) {
	fake := &fakePublisher{}
	svc := NewMailService(&config.Config{FromEmail: "no-reply@learnhub.io"}, fake)
	user := &models.User{Email: "jo@example.com"}

	svc.SendResetLink(context.Background(), user, "tok123")
	body := fake.emails[0].body
	if !strings.Contains(body, "tok123") {
		t.Errorf("body does not carry the token: %q", body)
	}
	if strings.Contains(body, "reset-password?token=") {
		t.Errorf("body should not fabricate a URL without a frontend address: %q", body)
	}
}

func TestEnqueueReportsBrokerFailure(t *testing.T) {
	fake := &fakePublisher{fail: true}
	svc := mailFixture(fake)
	user := &models.User{Email: "jo@example.com"}

	if ok := svc.SendVerificationOTP(context.Background(), user, "0000", 10); ok {
		t.Error("expected false when the broker publish fails")
	}
}
