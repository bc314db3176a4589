package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAdvanceOrderStatusCommandIsNotConstructed = errors.New(
	"AdvanceOrderStatusCommand must be created via one of the NewApply…Command constructors",
)

// AdvanceOrderStatusCommand carries a delivery event into the order saga. Each delivery
// event maps to exactly one target status.
//
// Example:
//
//	cmd, _ := NewApplyDriverAssignedCommand(42, 5)    // PREPARING -> ASSIGNED
//	cmd, _ = NewApplyOrderPickedUpCommand(42)         // ASSIGNED -> OUT_FOR_DELIVERY
//	cmd, _ = NewApplyOrderDeliveredCommand(42)        // OUT_FOR_DELIVERY -> DELIVERED
type AdvanceOrderStatusCommand struct {
	orderID  int64
	driverID int64
	target   order.Status

	guard guard.ConstructorGuard
}

// NewApplyDriverAssignedCommand builds the step for a DriverAssigned event.
func NewApplyDriverAssignedCommand(orderID, driverID int64) (AdvanceOrderStatusCommand, error) {
	return newAdvanceOrderStatusCommand(orderID, driverID, order.Assigned)
}

// NewApplyOrderPickedUpCommand builds the step for an OrderPickedUp event.
func NewApplyOrderPickedUpCommand(orderID int64) (AdvanceOrderStatusCommand, error) {
	return newAdvanceOrderStatusCommand(orderID, 0, order.OutForDelivery)
}

// NewApplyOrderDeliveredCommand builds the step for an OrderDelivered event.
func NewApplyOrderDeliveredCommand(orderID int64) (AdvanceOrderStatusCommand, error) {
	return newAdvanceOrderStatusCommand(orderID, 0, order.Delivered)
}

func newAdvanceOrderStatusCommand(orderID, driverID int64, target order.Status) (AdvanceOrderStatusCommand, error) {
	if orderID <= 0 {
		return AdvanceOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order id", fmt.Errorf("%d is not positive", orderID))
	}

	return AdvanceOrderStatusCommand{
		orderID:  orderID,
		driverID: driverID,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderStatusCommandIsNotConstructed)
}

func (c AdvanceOrderStatusCommand) OrderID() int64 {
	return c.orderID
}

// DriverID is set only for the driver-assigned step.
func (c AdvanceOrderStatusCommand) DriverID() int64 {
	return c.driverID
}

func (c AdvanceOrderStatusCommand) Target() order.Status {
	return c.target
}
