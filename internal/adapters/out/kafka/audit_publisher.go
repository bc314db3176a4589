// Package kafka mirrors published integration events into an audit topic.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/Shopify/sarama"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/ports"
)

const headerEventType = "event-type"

// AuditingPublisher publishes through next and then writes the same event to the audit
// topic. Audit failures are logged and never returned.
type AuditingPublisher struct {
	next     ports.EventPublisher
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

func NewAuditingPublisher(
	next ports.EventPublisher,
	producer sarama.SyncProducer,
	topic string,
	logger *slog.Logger,
) *AuditingPublisher {
	return &AuditingPublisher{
		next:     next,
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "audit_publisher", "topic", topic),
	}
}

// NewSyncProducer connects a producer that waits for the leader's acknowledgement.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	return sarama.NewSyncProducer(brokers, config)
}

func (p *AuditingPublisher) Publish(ctx context.Context, event events.Event) error {
	if err := p.next.Publish(ctx, event); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode audit record", "type", event.Type(), "error", err)
		return nil
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.Key(), 10)),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type())},
		},
	})
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to write audit record", "type", event.Type(), "error", err)
		return nil
	}

	p.logger.DebugContext(ctx, "Audit record written", "type", event.Type(), "partition", partition, "offset", offset)
	return nil
}
