package queries

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

var ErrGetDeliveryStatsQueryIsNotConstructed = errors.New(
	"GetDeliveryStatsQuery must be created via NewGetDeliveryStatsQuery constructor",
)

// GetDeliveryStatsQuery counts assignable drivers and deliveries in progress.
type GetDeliveryStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDeliveryStatsQuery() GetDeliveryStatsQuery {
	return GetDeliveryStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDeliveryStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryStatsQueryIsNotConstructed)
}

type DeliveryStatsResponse struct {
	AvailableDrivers int64
	ActiveDeliveries int64
}
