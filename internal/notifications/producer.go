package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/brianstm/kevii-gym-booking-app/internal/shared/config"
	"github.com/brianstm/kevii-gym-booking-app/pkg/logger"
)

// Producer publishes booking lifecycle events.
type Producer interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaProducer creates a sync producer against the configured brokers.
func NewKafkaProducer(cfg *config.Config) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaProducer{
		producer: producer,
		topic:    cfg.Kafka.BookingTopic,
		logger:   logger.GetDefault(),
	}, nil
}

func (p *kafkaProducer) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		// Partition by user so a member's confirmations stay ordered.
		Key:       sarama.StringEncoder(event.UserID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.CreatedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte("booking.confirmed")},
			{Key: []byte("booking_id"), Value: []byte(event.BookingID)},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send booking event to Kafka: %w", err)
	}

	p.logger.Info("Booking event published",
		"topic", p.topic,
		"partition", partition,
		"offset", offset,
		"booking_id", event.BookingID,
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// NoopProducer satisfies Producer when Kafka is disabled.
type NoopProducer struct{}

func (NoopProducer) PublishBookingConfirmed(ctx context.Context, event BookingConfirmedEvent) error {
	return nil
}

func (NoopProducer) Close() error { return nil }
