package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AdvisoryHandler processes one decoded advisory observation.
type AdvisoryHandler func(ctx context.Context, event AdvisoryEvent) error

// AdvisoryConsumer reads advisory events for a consumer group and feeds them
// to a handler. Malformed payloads are skipped and handler failures are
// logged, so one bad message never stalls the group.
type AdvisoryConsumer struct {
	reader *kafka.Reader
	logger *zap.Logger
}

func NewAdvisoryConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *AdvisoryConsumer {
	return &AdvisoryConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *AdvisoryConsumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Run consumes until ctx is done or the reader fails.
func (c *AdvisoryConsumer) Run(ctx context.Context, handler AdvisoryHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, err := decodeAdvisoryEvent(msg)
		if err != nil {
			c.logger.Warn("skipping malformed advisory event",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
			continue
		}

		if err := handler(ctx, event); err != nil {
			c.logger.Error("advisory event handler failed",
				zap.String("advisory_id", event.AdvisoryID),
				zap.Error(err))
		}
	}
}

func decodeAdvisoryEvent(msg kafka.Message) (AdvisoryEvent, error) {
	var event AdvisoryEvent
	err := json.Unmarshal(msg.Value, &event)
	return event, err
}
