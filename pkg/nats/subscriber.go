package nats

import (
	"context"
	"fmt"
	"log"

	"hcp-crm-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc       *nats.Conn
	js       jetstream.JetStream
	consumer jetstream.ConsumeContext
}

func NewSubscriber(url string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js}, nil
}

// Subscribe registers a handler for an event subject pattern on a durable
// consumer. Messages that fail to decode are terminated, handler failures
// are redelivered.
func (s *Subscriber) Subscribe(ctx context.Context, subject string, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := events.Decode(msg.Data())
		if err != nil {
			log.Printf("Error decoding event on %s: %v", msg.Subject(), err)
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			log.Printf("Handler failed for event %s: %v", msg.Subject(), err)
			_ = msg.Nak()
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.consumer = cc

	log.Printf("Subscribed to %s with durable %s", subject, durableName)
	return nil
}

// Close stops consuming and closes the connection.
func (s *Subscriber) Close() {
	if s.consumer != nil {
		s.consumer.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}
