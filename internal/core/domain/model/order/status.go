package order

import (
	"fmt"
	"slices"

	"fooddelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order inside the fulfillment saga.
//
// State transitions:
//
//	Received ─────┬──> Preparing ──> Assigned ──> OutForDelivery ──> Delivered
//	PendingPayment┘        │
//	      │                │
//	      └──> PaymentFailed (from Received or PendingPayment only)
//
// PaymentFailed and Delivered are terminal. Any edge that is not listed in the
// transition table is rejected with an InvalidStateError, so stale, duplicate or
// out-of-order events can never move an order backwards or skip a step.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Received is the initial status of a newly placed order.
	Received

	// PendingPayment is an optional pre-payment status. Orders stored in it are
	// treated exactly like Received by the payment outcome step.
	PendingPayment

	// Preparing means the payment succeeded and the restaurant is preparing the food.
	Preparing

	// PaymentFailed means the payment was declined. Terminal.
	PaymentFailed

	// Assigned means a driver has been assigned to the order.
	Assigned

	// OutForDelivery means the driver picked the order up.
	OutForDelivery

	// Delivered means the order reached the customer. Terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Received:       "RECEIVED",
		PendingPayment: "PENDING_PAYMENT",
		Preparing:      "PREPARING",
		PaymentFailed:  "PAYMENT_FAILED",
		Assigned:       "ASSIGNED",
		OutForDelivery: "OUT_FOR_DELIVERY",
		Delivered:      "DELIVERED",
	}
}

// getTransitions returns the allowed edges of the order state machine.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[Status][]Status{
		Received:       {Preparing, PaymentFailed},
		PendingPayment: {Preparing, PaymentFailed},
		Preparing:      {Assigned},
		Assigned:       {OutForDelivery},
		OutForDelivery: {Delivered},
	}
}

// ParseStatus converts the persisted or wire name of a status back to Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that s is one of the defined statuses other than Unknown.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the upper-case name used in storage and on the wire.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == PaymentFailed || s == Delivered
}

// CanTransitionTo reports whether next is a direct successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(getTransitions()[s], next)
}

// TransitionTo returns next when the edge s -> next exists, otherwise an InvalidStateError.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, errs.NewInvalidStateError("order", s, next)
	}
	return next, nil
}
