package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrClaimDriverCommandIsNotConstructed = errors.New(
	"ClaimDriverCommand must be created via NewClaimDriverCommand or NewReleaseDriverCommand constructor",
)

// ClaimDriverCommand reserves (or, built with NewReleaseDriverCommand, frees) a driver for
// one order.
type ClaimDriverCommand struct {
	driverID int64
	orderID  int64
	release  bool

	guard guard.ConstructorGuard
}

func NewClaimDriverCommand(driverID, orderID int64) (ClaimDriverCommand, error) {
	return newClaimDriverCommand(driverID, orderID, false)
}

func NewReleaseDriverCommand(driverID, orderID int64) (ClaimDriverCommand, error) {
	return newClaimDriverCommand(driverID, orderID, true)
}

func newClaimDriverCommand(driverID, orderID int64, release bool) (ClaimDriverCommand, error) {
	var problems []error
	if driverID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is not positive", driverID)))
	}
	if orderID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID)))
	}
	if err := errors.Join(problems...); err != nil {
		return ClaimDriverCommand{}, err
	}

	return ClaimDriverCommand{
		driverID: driverID,
		orderID:  orderID,
		release:  release,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimDriverCommand) Validate() error {
	return c.guard.Validate(ErrClaimDriverCommandIsNotConstructed)
}

func (c ClaimDriverCommand) DriverID() int64 {
	return c.driverID
}

func (c ClaimDriverCommand) OrderID() int64 {
	return c.orderID
}

// IsRelease reports whether the command frees the driver instead of reserving it.
func (c ClaimDriverCommand) IsRelease() bool {
	return c.release
}
