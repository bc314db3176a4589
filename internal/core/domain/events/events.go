// Package events defines the integration events exchanged between the fulfillment services.
// Every event is a JSON document with camelCase fields; its Type doubles as the routing key.
package events

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeOrderReadyForPickup   = "order.ready_for_pickup"
	TypePaymentOutcome        = "payment.outcome"
	TypeDriverAssigned        = "delivery.driver_assigned"
	TypeOrderPickedUp         = "delivery.order_picked_up"
	TypeOrderDelivered        = "delivery.order_delivered"
	TypeDriverLocationUpdated = "driver.location_updated"
)

// Event is implemented by every integration event.
type Event interface {
	Type() string
	// Key is the entity the event is about, used for partitioning the audit stream.
	Key() int64
}

// OrderReadyForPickup is emitted by the order service once payment succeeded.
type OrderReadyForPickup struct {
	OrderID      int64 `json:"orderId"`
	RestaurantID int64 `json:"restaurantId"`
}

func (OrderReadyForPickup) Type() string { return TypeOrderReadyForPickup }
func (e OrderReadyForPickup) Key() int64 { return e.OrderID }

// PaymentOutcome is emitted by the payment service when a transaction is confirmed.
type PaymentOutcome struct {
	OrderID       int64           `json:"orderId"`
	TransactionID int64           `json:"transactionId"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	FailureReason string          `json:"failureReason,omitempty"`
}

func (PaymentOutcome) Type() string { return TypePaymentOutcome }
func (e PaymentOutcome) Key() int64 { return e.OrderID }

// Successful reports whether the payment went through. Status is compared case-insensitively.
func (e PaymentOutcome) Successful() bool {
	return strings.EqualFold(e.Status, PaymentStatusSuccessful)
}

const (
	PaymentStatusSuccessful = "SUCCESSFUL"
	PaymentStatusFailed     = "FAILED"
)

// DriverAssigned is emitted by the delivery service after a driver was bound to an order.
type DriverAssigned struct {
	OrderID  int64 `json:"orderId"`
	DriverID int64 `json:"driverId"`
}

func (DriverAssigned) Type() string { return TypeDriverAssigned }
func (e DriverAssigned) Key() int64 { return e.OrderID }

// OrderPickedUp is emitted when the driver collected the order from the restaurant.
type OrderPickedUp struct {
	OrderID   int64     `json:"orderId"`
	DriverID  int64     `json:"driverId"`
	Timestamp time.Time `json:"timestamp"`
}

func (OrderPickedUp) Type() string { return TypeOrderPickedUp }
func (e OrderPickedUp) Key() int64 { return e.OrderID }

// OrderDelivered is emitted when the driver handed the order over.
type OrderDelivered struct {
	OrderID   int64     `json:"orderId"`
	DriverID  int64     `json:"driverId"`
	Timestamp time.Time `json:"timestamp"`
}

func (OrderDelivered) Type() string { return TypeOrderDelivered }
func (e OrderDelivered) Key() int64 { return e.OrderID }

// DriverLocationUpdated is emitted by the driver service on every location report.
type DriverLocationUpdated struct {
	DriverID  int64     `json:"driverId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

func (DriverLocationUpdated) Type() string { return TypeDriverLocationUpdated }
func (e DriverLocationUpdated) Key() int64 { return e.DriverID }
