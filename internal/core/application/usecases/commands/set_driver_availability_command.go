package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrSetDriverAvailabilityCommandIsNotConstructed = errors.New(
	"SetDriverAvailabilityCommand must be created via NewSetDriverAvailabilityCommand constructor",
)

// SetDriverAvailabilityCommand switches a driver on or off duty.
type SetDriverAvailabilityCommand struct {
	driverID  int64
	available bool

	guard guard.ConstructorGuard
}

func NewSetDriverAvailabilityCommand(driverID int64, available bool) (SetDriverAvailabilityCommand, error) {
	if driverID <= 0 {
		return SetDriverAvailabilityCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"driver id", fmt.Errorf("%d is not positive", driverID))
	}

	return SetDriverAvailabilityCommand{
		driverID:  driverID,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverAvailabilityCommandIsNotConstructed)
}

func (c SetDriverAvailabilityCommand) DriverID() int64 {
	return c.driverID
}

func (c SetDriverAvailabilityCommand) Available() bool {
	return c.available
}
