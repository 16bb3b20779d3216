package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/segmentio/kafka-go"
)

const (
	EventAdvisoryCreated = "advisory_created"
	EventAdvisoryUpdated = "advisory_updated"
)

// AdvisoryEvent is published when a poller observes a new or changed
// operational advisory.
type AdvisoryEvent struct {
	Type            string    `json:"type"` // EventAdvisoryCreated | EventAdvisoryUpdated
	AdvisoryID      string    `json:"advisory_id"`
	Source          string    `json:"source"`
	Airport         string    `json:"airport"`
	Kind            string    `json:"kind"`
	Severity        string    `json:"severity"`
	AvgDelayMinutes int       `json:"avg_delay_minutes"`
	Reason          string    `json:"reason"`
	ActiveFrom      time.Time `json:"active_from"`
}

// AlertEvent is published when an assessment or advisory crosses the alert
// threshold.
type AlertEvent struct {
	Type               string  `json:"type"` // connection_at_risk | alert_raised
	Airport            string  `json:"airport"`
	AssessmentID       string  `json:"assessment_id,omitempty"`
	AdvisoryID         string  `json:"advisory_id,omitempty"`
	RiskLevel          string  `json:"risk_level,omitempty"`
	Severity           string  `json:"severity,omitempty"`
	SuccessProbability float64 `json:"success_probability,omitempty"`
	BufferMinutes      int     `json:"buffer_minutes,omitempty"`
	Detail             string  `json:"detail,omitempty"`
}

// NewAdvisoryEvent builds the event payload for an advisory observation.
func NewAdvisoryEvent(a *domain.Advisory, created bool) AdvisoryEvent {
	eventType := EventAdvisoryUpdated
	if created {
		eventType = EventAdvisoryCreated
	}
	return AdvisoryEvent{
		Type:            eventType,
		AdvisoryID:      a.ID,
		Source:          string(a.Source),
		Airport:         a.Airport,
		Kind:            string(a.Kind),
		Severity:        string(a.Severity),
		AvgDelayMinutes: a.AvgDelayMinutes,
		Reason:          a.Reason,
		ActiveFrom:      a.ActiveFrom,
	}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// PublishWithRetry retries with linear backoff; the payloads here are
// advisory, so a few attempts are enough before the caller logs and moves on.
func (p *Producer) PublishWithRetry(ctx context.Context, topic, key string, payload interface{}, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := p.Publish(ctx, topic, key, payload); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if i < maxRetries-1 {
			select {
			case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
