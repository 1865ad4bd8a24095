package service

import (
	"context"

	"hcp-crm-be/internal/pkg/logger"
	"hcp-crm-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

const consumerModule = "EventConsumer"

// EventForwarder relays events off the process, e.g. to NATS JetStream.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder
	logger     logger.ILogger
}

// NewConsumerService drains the in-process topic. forwarder may be nil when
// no external bus is configured.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		logger:     log,
	}
}

// Consume subscribes and processes messages in the background until ctx ends.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error(consumerModule, "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info(consumerModule, "Event received", map[string]interface{}{
		"type": event.EventType(),
		"data": event.Payload(),
	})

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn(consumerModule, "Failed to forward event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
