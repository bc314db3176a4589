package commands

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTrackDriverLocationCommandIsNotConstructed = errors.New(
	"TrackDriverLocationCommand must be created via NewTrackDriverLocationCommand constructor",
)

// TrackDriverLocationCommand carries a DriverLocationUpdated event into the delivery service.
type TrackDriverLocationCommand struct {
	driverID  int64
	location  kernel.Location
	timestamp time.Time

	guard guard.ConstructorGuard
}

func NewTrackDriverLocationCommand(
	driverID int64,
	latitude, longitude float64,
	timestamp time.Time,
) (TrackDriverLocationCommand, error) {
	var idErr error
	if driverID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is not positive", driverID))
	}

	location, locErr := kernel.NewLocation(latitude, longitude)
	if err := errors.Join(idErr, locErr); err != nil {
		return TrackDriverLocationCommand{}, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return TrackDriverLocationCommand{
		driverID:  driverID,
		location:  location,
		timestamp: timestamp,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TrackDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrTrackDriverLocationCommandIsNotConstructed)
}

func (c TrackDriverLocationCommand) DriverID() int64 {
	return c.driverID
}

func (c TrackDriverLocationCommand) Location() kernel.Location {
	return c.location
}

func (c TrackDriverLocationCommand) Timestamp() time.Time {
	return c.timestamp
}
