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

// Consumer drains booking confirmation events and hands them to a handler.
// The default handler just logs; a mailer can be plugged in later.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes a single confirmed booking event.
type EventHandler func(ctx context.Context, event BookingConfirmedEvent) error

type kafkaConsumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	handler EventHandler
	logger  *logger.Logger
	cancel  context.CancelFunc
}

func NewKafkaConsumer(cfg *config.Config, handler EventHandler) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	log := logger.GetDefault()
	if handler == nil {
		handler = logHandler(log)
	}

	return &kafkaConsumer{
		group:   group,
		topics:  []string{cfg.Kafka.BookingTopic},
		handler: handler,
		logger:  log,
	}, nil
}

func logHandler(log *logger.Logger) EventHandler {
	return func(ctx context.Context, event BookingConfirmedEvent) error {
		log.Info("Booking confirmed",
			"booking_id", event.BookingID,
			"user_id", event.UserID,
			"starts_at", event.StartsAt.Format(time.RFC3339),
			"duration_hours", event.DurationHours,
		)
		return nil
	}
}

func (c *kafkaConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go func() {
		for err := range c.group.Errors() {
			c.logger.WithError(err).Error("Consumer group error")
		}
	}()

	go func() {
		handler := &groupHandler{handler: c.handler, logger: c.logger}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.group.Consume(ctx, c.topics, handler); err != nil {
					c.logger.WithError(err).Error("Error consuming messages")
					time.Sleep(time.Second)
				}
			}
		}
	}()

	c.logger.Info("Booking event consumer started", "topics", c.topics)
	return nil
}

func (c *kafkaConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type groupHandler struct {
	handler EventHandler
	logger  *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event BookingConfirmedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			h.logger.WithError(err).Error("Dropping malformed booking event",
				"topic", message.Topic,
				"offset", message.Offset,
			)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler(session.Context(), event); err != nil {
			h.logger.WithError(err).Error("Failed to handle booking event",
				"booking_id", event.BookingID,
			)
		}
		session.MarkMessage(message, "")
	}
	return nil
}
