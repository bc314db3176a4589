package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/metrics"
	"fooddelivery/internal/pkg/errs"
)

// Publisher implements ports.EventPublisher. Messages are persistent and every publish
// waits for the broker's confirmation.
type Publisher struct {
	mu sync.Mutex
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err = DeclareExchange(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, err
	}

	return &Publisher{ch: ch}, nil
}

// Publish returns an UpstreamUnavailableError when the broker rejects or does not confirm
// the message.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         event.Type(),
		Body:         body,
	}

	p.mu.Lock()
	confirmation, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, Exchange, event.Type(), false, false, msg)
	p.mu.Unlock()
	if err != nil {
		return errs.NewUpstreamUnavailableError("event bus", err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return errs.NewUpstreamUnavailableError("event bus", err)
	}
	if !acked {
		return errs.NewUpstreamUnavailableError("event bus", fmt.Errorf("broker nacked %s", event.Type()))
	}

	metrics.EventsPublishedTotal.WithLabelValues(event.Type()).Inc()
	return nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}
