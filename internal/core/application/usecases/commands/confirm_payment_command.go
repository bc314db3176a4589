package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand is the provider callback that settles a transaction.
type ConfirmPaymentCommand struct {
	transactionID int64
	succeeded     bool

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(transactionID int64, succeeded bool) (ConfirmPaymentCommand, error) {
	if transactionID <= 0 {
		return ConfirmPaymentCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"transaction id", fmt.Errorf("%d is not positive", transactionID))
	}

	return ConfirmPaymentCommand{
		transactionID: transactionID,
		succeeded:     succeeded,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) TransactionID() int64 {
	return c.transactionID
}

func (c ConfirmPaymentCommand) Succeeded() bool {
	return c.succeeded
}
