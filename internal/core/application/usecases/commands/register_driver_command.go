package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterDriverCommandIsNotConstructed = errors.New(
	"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
)

// RegisterDriverCommand creates the driver profile for a user account.
type RegisterDriverCommand struct {
	driverID       int64
	vehicleDetails string

	guard guard.ConstructorGuard
}

func NewRegisterDriverCommand(driverID int64, vehicleDetails string) (RegisterDriverCommand, error) {
	if driverID <= 0 {
		return RegisterDriverCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"driver id", fmt.Errorf("%d is not positive", driverID))
	}

	return RegisterDriverCommand{
		driverID:       driverID,
		vehicleDetails: vehicleDetails,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

func (c RegisterDriverCommand) DriverID() int64 {
	return c.driverID
}

func (c RegisterDriverCommand) VehicleDetails() string {
	return c.vehicleDetails
}
