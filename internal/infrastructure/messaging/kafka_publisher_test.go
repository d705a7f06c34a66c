package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/internal/domain/event"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/events"
	"github.com/Kshireen/MumbaiHacks----Track-Fintech----ProjectName-Finsentinal/pkg/kafka"
)

type fakeProducer struct {
	topic    string
	messages []kafka.Message
	err      error
}

func (f *fakeProducer) Publish(_ context.Context, topic string, messages ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.topic = topic
	f.messages = append(f.messages, messages...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &fakeProducer{}
	pub := NewKafkaPublisher(producer, "sentinel.decisions", discardLogger())

	decisionID := uuid.New()
	at := time.Date(2024, 11, 29, 10, 42, 0, 0, time.UTC)
	decided := event.NewOnboardingDecided(decisionID, uuid.New(), "+99999991000", "approved", 0, "HIGH_RISK", []string{"pause_onboarding"}, at)
	highRisk := event.NewHighRiskDetected(decisionID, "onboarding", "+99999991000", 95, "HIGH_RISK", []string{"sim_swap"}, at)

	require.NoError(t, pub.Publish(context.Background(), decided, highRisk))

	assert.Equal(t, "sentinel.decisions", producer.topic)
	require.Len(t, producer.messages, 2)

	first := producer.messages[0]
	assert.Equal(t, decisionID.String(), string(first.Key))
	assert.Equal(t, event.EventTypeOnboardingDecided, first.Headers[events.HeaderEventType])
	assert.Equal(t, "application/json", first.Headers["content_type"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(first.Value, &body))
	assert.Equal(t, "approved", body["status"])
	assert.Equal(t, "+99999991000", body["phone_number"])

	assert.Equal(t, decisionID.String(), string(producer.messages[1].Key))
	assert.Equal(t, event.EventTypeHighRiskDetected, producer.messages[1].Headers[events.HeaderEventType])
}

func TestKafkaPublisher_PublishNothing(t *testing.T) {
	producer := &fakeProducer{err: errors.New("must not be called")}
	pub := NewKafkaPublisher(producer, "sentinel.decisions", discardLogger())

	assert.NoError(t, pub.Publish(context.Background()))
}

func TestKafkaPublisher_ProducerError(t *testing.T) {
	producer := &fakeProducer{err: errors.New("broker down")}
	pub := NewKafkaPublisher(producer, "sentinel.decisions", discardLogger())

	e := event.NewHighRiskDetected(uuid.New(), "sim_swap", "+99999991000", 95, "HIGH_RISK", nil, time.Now())
	err := pub.Publish(context.Background(), e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Contains(t, err.Error(), "1 events")
}

func TestLogPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(slog.New(slog.NewTextHandler(&buf, nil)))

	e := event.NewHighRiskDetected(uuid.New(), "transaction", "+99999991000", 80, "CRITICAL", nil, time.Now())
	require.NoError(t, pub.Publish(context.Background(), e))

	assert.Contains(t, buf.String(), "domain event")
	assert.Contains(t, buf.String(), event.EventTypeHighRiskDetected)
}
