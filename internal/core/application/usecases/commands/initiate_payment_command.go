package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand starts the (mock) payment of an order.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID  int64
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(orderID int64, amount decimal.Decimal, currency string) (InitiatePaymentCommand, error) {
	cmd := InitiatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAmount(amount),
		cmd.setCurrency(currency),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return cmd, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) OrderID() int64 {
	return c.orderID
}

func (c InitiatePaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c InitiatePaymentCommand) Currency() string {
	return c.currency
}

func (c *InitiatePaymentCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID))
	}
	c.orderID = orderID
	return nil
}

func (c *InitiatePaymentCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}

func (c *InitiatePaymentCommand) setCurrency(currency string) error {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return errs.NewValueIsRequiredError("currency")
	}
	c.currency = currency
	return nil
}
