package service

import (
	"context"

	"hcp-crm-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
	PublishEvent(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (p *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}

func (p *publisherService) PublishEvent(ctx context.Context, event events.Event) error {
	payload, err := events.Encode(event)
	if err != nil {
		return err
	}
	return p.Publish(ctx, payload)
}
