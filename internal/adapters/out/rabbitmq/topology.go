// Package rabbitmq publishes integration events to the event bus.
//
// All services share one durable topic exchange. The routing key of a message is the event
// type, and every consuming service owns one durable queue bound to the types it handles.
package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const Exchange = "fulfillment.events"

// DeclareExchange declares the shared exchange. Declaring is idempotent.
func DeclareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		Exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
}

// DeclareQueue declares a durable queue and binds it to every routing key.
func DeclareQueue(ch *amqp.Channel, queue string, routingKeys []string) error {
	if err := DeclareExchange(ch); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}

	for _, key := range routingKeys {
		if err := ch.QueueBind(queue, key, Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}
