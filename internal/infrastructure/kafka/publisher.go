package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/forgeline/rfq-service/internal/domain"
	"github.com/segmentio/kafka-go"
)

// NotificationPublisher pushes negotiation events to the notification topic.
// Consumers own delivery and formatting; this side only guarantees the event
// payload.
type NotificationPublisher struct {
	writer *kafka.Writer
}

func NewNotificationPublisher(brokers []string, topic string) *NotificationPublisher {
	return &NotificationPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *NotificationPublisher) PublishNotification(event domain.NotificationEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Keyed by negotiation id so all events of one negotiation stay ordered.
	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Key:   []byte(event.NegotiationID),
		Value: msg,
		Time:  time.Now(),
	})
}

func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
