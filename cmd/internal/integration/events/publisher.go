package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/segmentio/kafka-go"
)

// BookingStatusChanged is emitted after a lifecycle transition commits.
type BookingStatusChanged struct {
	BookingID  string `json:"booking_id"`
	BusinessID string `json:"business_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	OccurredAt string `json:"occurred_at"`
}

type Publisher interface {
	PublishBookingStatusChanged(ctx context.Context, evt *BookingStatusChanged)
	Close() error
}

// InitPublisher returns a Kafka-backed publisher when KAFKA_BROKERS is set
// and a no-op otherwise. Publishing is best effort: a broker failure is
// logged and never fails the booking update that triggered it.
func InitPublisher() Publisher {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return &noopPublisher{}
	}

	topic := os.Getenv("KAFKA_BOOKING_EVENTS_TOPIC")
	if topic == "" {
		topic = "booking-events"
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}
	return &kafkaPublisher{writer: writer}
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func (p *kafkaPublisher) PublishBookingStatusChanged(ctx context.Context, evt *BookingStatusChanged) {
	payload, err := json.Marshal(evt)
	if err != nil {
		log.Errorf("failed to encode booking event for %s: %v", evt.BookingID, err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.BusinessID),
		Value: payload,
	})
	if err != nil {
		log.Errorf("failed to publish booking event for %s: %v", evt.BookingID, err)
	}
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (p *noopPublisher) PublishBookingStatusChanged(context.Context, *BookingStatusChanged) {}

func (p *noopPublisher) Close() error { return nil }
