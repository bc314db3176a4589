package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand carries an OrderReadyForPickup event into the delivery service.
//
// Example:
//
//	cmd, err := NewAssignDriverCommand(42, 7)
//	if err != nil {
//	    return err
//	}
//	outcome, err := handler.Handle(ctx, cmd)
type AssignDriverCommand struct {
	orderID      int64
	restaurantID int64

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(orderID, restaurantID int64) (AssignDriverCommand, error) {
	if orderID <= 0 {
		return AssignDriverCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order id", fmt.Errorf("%d is not positive", orderID))
	}

	return AssignDriverCommand{
		orderID:      orderID,
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) OrderID() int64 {
	return c.orderID
}

// RestaurantID is the pickup point. Selection does not use it yet.
func (c AssignDriverCommand) RestaurantID() int64 {
	return c.restaurantID
}
