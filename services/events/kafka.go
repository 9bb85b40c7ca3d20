package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parcel-tracking/services/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher appends events to a topic keyed by tracking number, so all
// transitions of one parcel land on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaWriter builds the writer used by KafkaPublisher. Writes are
// asynchronous; failed batches are counted per event type in Completion.
func NewKafkaWriter(brokers []string, topic string, logf func(string, ...interface{})) *kafka.Writer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Completion:   countFailedMessages,
	}
	if logf != nil {
		w.Logger = kafka.LoggerFunc(logf)
	}
	return w
}

func countFailedMessages(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		metrics.EventPublishFailures.WithLabelValues(eventTypeOf(m)).Inc()
	}
}

func eventTypeOf(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return "unknown"
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewMessage encodes an event as a kafka message.
func NewMessage(event *Event) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.TrackingNumber),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}, nil
}
