// Package consumer delivers integration events from a RabbitMQ queue to the saga steps.
//
// Acknowledgement policy:
//   - undecodable messages and unknown event types are acknowledged and dropped
//   - no-op outcomes (stale, duplicate, not found, nobody available) are acknowledged
//   - guard failures and upstream failures are logged and acknowledged, there is no retry
//   - any other error is logged and the message is rejected without requeue
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/metrics"
	"fooddelivery/internal/pkg/errs"
)

const (
	outcomeDropped  = "dropped"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// HandlerFunc runs one saga step for a decoded event.
type HandlerFunc func(ctx context.Context, event events.Event) (commands.Outcome, error)

// Consumer reads one queue with a fixed pool of workers.
type Consumer struct {
	conn     *amqp.Connection
	queue    string
	workers  int
	handlers map[string]HandlerFunc
	logger   *slog.Logger
}

func NewConsumer(
	conn *amqp.Connection,
	queue string,
	workers int,
	handlers map[string]HandlerFunc,
	logger *slog.Logger,
) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{
		conn:     conn,
		queue:    queue,
		workers:  workers,
		handlers: handlers,
		logger:   logger.With("component", "consumer", "queue", queue),
	}
}

func (c *Consumer) Queue() string {
	return c.queue
}

// RoutingKeys returns the event types this consumer handles, for binding its queue.
func (c *Consumer) RoutingKeys() []string {
	keys := make([]string, 0, len(c.handlers))
	for key := range c.handlers {
		keys = append(keys, key)
	}
	return keys
}

// Run consumes until ctx is cancelled. On cancellation the subscription is cancelled and
// the workers finish the deliveries already received before Run returns.
func (c *Consumer) Run(ctx context.Context) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	defer func() {
		_ = ch.Close()
	}()

	if err = ch.Qos(c.workers, 0, false); err != nil {
		return err
	}

	tag := c.queue + "-" + uuid.NewString()
	deliveries, err := ch.Consume(c.queue, tag, false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Consumer started", "workers", c.workers)

	stopped := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			if cancelErr := ch.Cancel(tag, false); cancelErr != nil {
				c.logger.WarnContext(ctx, "Failed to cancel subscription", "error", cancelErr)
			}
		case <-stopped:
		}
	}()
	defer close(stopped)

	work := context.WithoutCancel(ctx)

	var g errgroup.Group
	for range c.workers {
		g.Go(func() error {
			for d := range deliveries {
				c.HandleDelivery(work, d)
			}
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() == nil {
		return fmt.Errorf("deliveries of queue %s closed by the broker", c.queue)
	}

	c.logger.InfoContext(ctx, "Consumer stopped")
	return nil
}

// HandleDelivery decodes, dispatches and acknowledges a single message.
func (c *Consumer) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	logger := c.logger.With("type", d.Type, "message_id", d.MessageId)

	handler, ok := c.handlers[d.Type]
	if !ok {
		logger.WarnContext(ctx, "Dropping message of unhandled type")
		c.settle(ctx, logger, d, d.Type, outcomeDropped, true)
		return
	}

	event, err := events.Decode(d.Type, d.Body)
	if err != nil {
		logger.WarnContext(ctx, "Dropping undecodable message", "error", err)
		c.settle(ctx, logger, d, d.Type, outcomeDropped, true)
		return
	}

	start := time.Now()
	outcome, err := handler(ctx, event)
	metrics.EventProcessingDuration.WithLabelValues(d.Type).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		if outcome.IsApplied() {
			logger.DebugContext(ctx, "Event applied", "key", event.Key())
		} else {
			logger.InfoContext(ctx, "Event ignored", "key", event.Key(), "outcome", string(outcome))
		}
		c.settle(ctx, logger, d, d.Type, string(outcome), true)
	case isSwallowed(err):
		logger.WarnContext(ctx, "Event step failed, not retrying", "key", event.Key(), "error", err)
		c.settle(ctx, logger, d, d.Type, outcomeFailed, true)
	default:
		logger.ErrorContext(ctx, "Event step failed unexpectedly", "key", event.Key(), "error", err)
		c.settle(ctx, logger, d, d.Type, outcomeRejected, false)
	}
}

func (c *Consumer) settle(ctx context.Context, logger *slog.Logger, d amqp.Delivery, eventType, outcome string, ack bool) {
	metrics.EventsConsumedTotal.WithLabelValues(eventType, outcome).Inc()

	var err error
	if ack {
		err = d.Ack(false)
	} else {
		err = d.Nack(false, false)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to settle message", "ack", ack, "error", err)
	}
}

// isSwallowed reports errors that retrying the same message cannot fix.
func isSwallowed(err error) bool {
	return errors.Is(err, errs.ErrUpstreamUnavailable) ||
		errors.Is(err, errs.ErrInvalidState) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrAlreadyExists) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}
