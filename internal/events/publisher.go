package events

import (
	"context"
	"log"
)

type Publisher interface {
	PublishEmailRequested(ctx context.Context, recipient, subject, body, from string) error
	PublishUserRegistered(ctx context.Context, userID, email, role string) error
	PublishQuizSubmitted(ctx context.Context, studentID, quizID string, percentage float64, grade string) error

	// Close closes the publisher and releases resources.
	Close() error
}

type EventPublisher struct {
	rabbitMQ *RabbitMQClient
	enabled  bool
}

// NewEventPublisher connects to the broker. An empty URI disables publishing
// instead of failing, so the service still runs without a broker.
func NewEventPublisher(rabbitURI, exchange string) (*EventPublisher, error) {
	if rabbitURI == "" {
		log.Println("Warning: RabbitMQ URI is empty, event publishing is disabled")
		return &EventPublisher{
			rabbitMQ: nil,
			enabled:  false,
		}, nil
	}

	client, err := NewRabbitMQClient(rabbitURI, exchange)
	if err != nil {
		return nil, err
	}

	if err := client.setupExchangesAndQueues(); err != nil {
		client.Close()
		return nil, err
	}

	return &EventPublisher{
		rabbitMQ: client,
		enabled:  true,
	}, nil
}

func (p *EventPublisher) PublishEmailRequested(ctx context.Context, recipient, subject, body, from string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping EmailRequested")
		return nil
	}

	event := NewEmailRequestedEvent(recipient, subject, body, from)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent(string(EmailRequested), eventData); err != nil {
		return err
	}

	log.Printf("Published EmailRequested event for %s", recipient)
	return nil
}

func (p *EventPublisher) PublishUserRegistered(ctx context.Context, userID, email, role string) error {
	if !p.enabled {
		log.Println("Event publishing is disabled, skipping UserRegistered")
		return nil
	}

	event := NewUserRegisteredEvent(userID, email, role)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	if err := p.rabbitMQ.PublishEvent(string(UserRegistered), eventData); err != nil {
		return err
	}

	log.Printf("Published UserRegistered event for user ID: %s", userID)
	return nil
}

func (p *EventPublisher) PublishQuizSubmitted(ctx context.Context, studentID, quizID string, percentage float64, grade string) error {
	if !p.enabled {
		return nil
	}

	event := NewQuizSubmittedEvent(studentID, quizID, percentage, grade)

	eventData, err := event.ToJSON()
	if err != nil {
		return err
	}

	return p.rabbitMQ.PublishEvent(string(QuizSubmitted), eventData)
}

func (p *EventPublisher) Close() error {
	if !p.enabled || p.rabbitMQ == nil {
		return nil
	}

	return p.rabbitMQ.Close()
}
