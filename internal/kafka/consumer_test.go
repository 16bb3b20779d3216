package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ainohq/aino/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAdvisoryEvent(t *testing.T) {
	advisory := &domain.Advisory{
		ID:         "adv-9",
		Source:     domain.AdvisorySourceNAS,
		Airport:    "JFK",
		Kind:       domain.AdvisoryDepartureDelay,
		Severity:   domain.SeverityWarning,
		Reason:     "volume",
		ActiveFrom: time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(NewAdvisoryEvent(advisory, true))
	require.NoError(t, err)

	event, err := decodeAdvisoryEvent(kafka.Message{Value: payload})
	require.NoError(t, err)
	assert.Equal(t, EventAdvisoryCreated, event.Type)
	assert.Equal(t, "adv-9", event.AdvisoryID)
	assert.Equal(t, "JFK", event.Airport)
	assert.Equal(t, string(domain.SeverityWarning), event.Severity)
}

func TestDecodeAdvisoryEvent_Malformed(t *testing.T) {
	_, err := decodeAdvisoryEvent(kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}
