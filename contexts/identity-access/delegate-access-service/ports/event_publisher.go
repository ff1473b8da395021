package ports

import (
	"context"

	contractsv1 "jobdeck/contracts/gen/events/v1"
)

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a topic consumer callback.
type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

// Email is an outbound message handed to the delivery channel.
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers notification emails. Implementations are best
// effort; the workflow never blocks on delivery.
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}
