package kafka

import (
	"context"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport)
}

func TestNewProducer_SecureTransport(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "sentinel",
		SASLPassword:  "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, p.transport)
	assert.NotNil(t, p.transport.TLS)
	assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())

	w := p.getOrCreateWriter("sentinel.decisions")
	assert.Same(t, p.transport, w.Transport)
}

func TestNewProducer_UnsupportedSASL(t *testing.T) {
	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	assert.ErrorContains(t, err, "unsupported SASL mechanism")
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	w1 := p.getOrCreateWriter("topic-a")
	assert.Same(t, w1, p.getOrCreateWriter("topic-a"))
	assert.NotSame(t, w1, p.getOrCreateWriter("topic-b"))
	assert.IsType(t, &kafkago.Hash{}, w1.Balancer)
	assert.Len(t, p.writers, 2)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestToKafkaMessages_SortsHeaders(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:     []byte("k"),
		Value:   []byte("v"),
		Headers: map[string]string{"occurred_at": "t", "event_id": "1", "content_type": "application/json"},
	}})

	require.Len(t, msgs, 1)
	var keys []string
	for _, h := range msgs[0].Headers {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, []string{"content_type", "event_id", "occurred_at"}, keys)
	assert.Equal(t, []byte("k"), msgs[0].Key)
}

func TestPublish_NoMessages(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	require.NoError(t, p.Publish(context.Background(), "sentinel.decisions"))
	assert.Empty(t, p.writers, "no writer is created for an empty batch")
}

func TestSASLMechanism(t *testing.T) {
	m, err := Config{}.saslMechanism()
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = Config{SASLEnabled: true}.saslMechanism()
	require.NoError(t, err)
	assert.Equal(t, "PLAIN", m.Name())
}

func TestToMessage(t *testing.T) {
	msg := toMessage(kafkago.Message{
		Key:   []byte("decision-1"),
		Value: []byte(`{"score":95}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("sentinel.high_risk.detected")},
		},
	})

	assert.Equal(t, "decision-1", string(msg.Key))
	assert.Equal(t, "sentinel.high_risk.detected", msg.Headers["event_type"])
}

func TestNewConsumer_WithoutGroup(t *testing.T) {
	c, err := NewConsumer(Config{Brokers: []string{"localhost:9092"}, FromBeginning: true}, "sentinel.decisions", nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.False(t, c.grouped)
	assert.Equal(t, kafkago.FirstOffset, c.reader.Config().StartOffset)
}
