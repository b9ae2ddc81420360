package event_publish

import (
	"context"
	"fmt"

	"jamii/internal/entities"
	"jamii/internal/service/relay"
)

const headerEventType = "event-type"

type Producer interface {
	Send(ctx context.Context, topic, key string, value []byte, headers map[string]string) error
}

type Topics struct {
	OrderEvents string
	Settlement  string
}

type PublisherFactory struct {
	producer Producer
	topics   Topics
}

func NewPublisherFactory(producer Producer, topics Topics) *PublisherFactory {
	return &PublisherFactory{
		producer: producer,
		topics:   topics,
	}
}

func (f *PublisherFactory) GetPublisher(eventType entities.EventType) (relay.PublishFn, error) {
	switch eventType {
	case entities.EventOrderStatusChanged:
		return f.publishTo(f.topics.OrderEvents), nil
	case entities.EventSettlementRequested:
		return f.publishTo(f.topics.Settlement), nil
	default:
		return nil, fmt.Errorf("%w: %s", relay.ErrUndefinedEventType, eventType)
	}
}

// ключ партиционирования = id заказа, события одного заказа идут по порядку
func (f *PublisherFactory) publishTo(topic string) relay.PublishFn {
	return func(ctx context.Context, event entities.OutboxEvent) error {
		err := f.producer.Send(ctx, topic, event.Key, event.Payload, map[string]string{
			headerEventType: event.Type.String(),
		})
		if err != nil {
			return fmt.Errorf("send %s to %s: %w", event.Type, topic, err)
		}
		return nil
	}
}
