package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/guard"
)

var ErrListAvailableDriversQueryIsNotConstructed = errors.New(
	"ListAvailableDriversQuery must be created via NewListAvailableDriversQuery constructor",
)

// ListAvailableDriversQuery retrieves drivers that can take a new order: on duty and not
// reserved for another one. The driver directory serves assignment from it.
type ListAvailableDriversQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailableDriversQuery() ListAvailableDriversQuery {
	return ListAvailableDriversQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrListAvailableDriversQueryIsNotConstructed)
}

// AvailableDriverResponse is a driver in the available list. Coordinates are nil until
// the driver reports a position.
type AvailableDriverResponse struct {
	DriverID              int64
	VehicleDetails        string
	Latitude              *float64
	Longitude             *float64
	AvailabilityUpdatedAt time.Time
}
