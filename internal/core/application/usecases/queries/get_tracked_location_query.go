package queries

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetTrackedLocationQueryIsNotConstructed = errors.New(
	"GetTrackedLocationQuery must be created via NewGetTrackedLocationQuery constructor",
)

// GetTrackedLocationQuery reads the live position of the driver delivering an order.
type GetTrackedLocationQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetTrackedLocationQuery(orderID int64) (GetTrackedLocationQuery, error) {
	if orderID <= 0 {
		return GetTrackedLocationQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order id", fmt.Errorf("%d is not positive", orderID))
	}
	return GetTrackedLocationQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTrackedLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackedLocationQueryIsNotConstructed)
}

func (q GetTrackedLocationQuery) OrderID() int64 {
	return q.orderID
}

// TrackedLocationResponse is the last cached position for an order.
type TrackedLocationResponse struct {
	OrderID   int64
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}
