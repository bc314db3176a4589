package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand is a position report from a driver's device.
// Both coordinates are optional in the request body, hence the pointers.
type UpdateDriverLocationCommand struct {
	driverID int64
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewUpdateDriverLocationCommand(driverID int64, latitude, longitude *float64) (UpdateDriverLocationCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is not positive", driverID))
	}

	location, locErr := kernel.NewLocationFromPointers(latitude, longitude)
	if err := errors.Join(idErr, locErr); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return UpdateDriverLocationCommand{
		driverID: driverID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

func (c UpdateDriverLocationCommand) DriverID() int64 {
	return c.driverID
}

func (c UpdateDriverLocationCommand) Location() kernel.Location {
	return c.location
}
