package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	// EmailRequested asks the mail worker to deliver one message. The worker
	// owns retries (3x with backoff); publishers never retry.
	EmailRequested EventType = "email.requested"
	// UserRegistered is emitted after a new account is created.
	UserRegistered EventType = "user.registered"
	// QuizSubmitted is emitted after an attempt is persisted.
	QuizSubmitted EventType = "quiz.submitted"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	Version   string    `json:"version"`
}

func newBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Version:   "1.0",
	}
}

type EmailRequestedEvent struct {
	BaseEvent
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	From      string `json:"from"`
}

func NewEmailRequestedEvent(recipient, subject, body, from string) *EmailRequestedEvent {
	return &EmailRequestedEvent{
		BaseEvent: newBaseEvent(EmailRequested),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		From:      from,
	}
}

func (e *EmailRequestedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type UserRegisteredEvent struct {
	BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func NewUserRegisteredEvent(userID, email, role string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: newBaseEvent(UserRegistered),
		UserID:    userID,
		Email:     email,
		Role:      role,
	}
}

func (e *UserRegisteredEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type QuizSubmittedEvent struct {
	BaseEvent
	StudentID  string  `json:"student_id"`
	QuizID     string  `json:"quiz_id"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

func NewQuizSubmittedEvent(studentID, quizID string, percentage float64, grade string) *QuizSubmittedEvent {
	return &QuizSubmittedEvent{
		BaseEvent:  newBaseEvent(QuizSubmitted),
		StudentID:  studentID,
		QuizID:     quizID,
		Percentage: percentage,
		Grade:      grade,
	}
}

func (e *QuizSubmittedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
