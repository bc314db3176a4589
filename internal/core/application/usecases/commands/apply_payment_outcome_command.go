package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrApplyPaymentOutcomeCommandIsNotConstructed = errors.New(
	"ApplyPaymentOutcomeCommand must be created via NewApplyPaymentOutcomeCommand constructor",
)

// ApplyPaymentOutcomeCommand carries a PaymentOutcome event into the order saga.
type ApplyPaymentOutcomeCommand struct {
	orderID    int64
	successful bool

	guard guard.ConstructorGuard
}

func NewApplyPaymentOutcomeCommand(orderID int64, successful bool) (ApplyPaymentOutcomeCommand, error) {
	if orderID <= 0 {
		return ApplyPaymentOutcomeCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"order id", fmt.Errorf("%d is not positive", orderID))
	}

	return ApplyPaymentOutcomeCommand{
		orderID:    orderID,
		successful: successful,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApplyPaymentOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentOutcomeCommandIsNotConstructed)
}

func (c ApplyPaymentOutcomeCommand) OrderID() int64 {
	return c.orderID
}

func (c ApplyPaymentOutcomeCommand) Successful() bool {
	return c.successful
}
