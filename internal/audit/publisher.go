// Package audit publishes access decision events. Decisions must never block
// or fail on audit delivery, so publication is asynchronous and best-effort;
// the compliance-grade record is the synchronous decision trace returned to
// the caller.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher emits access events to a Kafka topic using franz-go's
// asynchronous producer. Delivery failures are logged and counted, never
// surfaced to the decision path.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

// NewKafkaPublisher connects a producer to the given brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{client: client, topic: topic, logger: logger}, nil
}

// Publish enqueues the event for asynchronous delivery, keyed by user so
// per-user event order is preserved within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event AccessEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode audit event", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("failed to deliver audit event",
				"event_id", event.EventID,
				"user_id", event.UserID,
				"error", err,
			)
		}
	})
}

// Close flushes buffered records and releases the producer.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return err
	}
	p.client.Close()
	return nil
}
