package queries

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// GetTrackedLocationQueryHandler serves live tracking from the location cache.
type GetTrackedLocationQueryHandler struct {
	cache ports.LocationCache
}

func NewGetTrackedLocationQueryHandler(cache ports.LocationCache) GetTrackedLocationQueryHandler {
	return GetTrackedLocationQueryHandler{cache: cache}
}

// Handle reports found=false when the order is not being tracked: it has no active
// assignment, the driver has not reported a position yet, or the entry expired.
func (h GetTrackedLocationQueryHandler) Handle(
	ctx context.Context,
	query GetTrackedLocationQuery,
) (TrackedLocationResponse, bool, error) {
	if err := query.Validate(); err != nil {
		return TrackedLocationResponse{}, false, err
	}

	loc, found, err := h.cache.Get(ctx, query.OrderID())
	if err != nil || !found {
		return TrackedLocationResponse{}, false, err
	}

	return TrackedLocationResponse{
		OrderID:   query.OrderID(),
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Timestamp: loc.Timestamp,
	}, true, nil
}
