package ports

import (
	"context"
	"time"
)

// TrackedLocation is the last known driver position for an order under delivery.
type TrackedLocation struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// LocationCache is the ephemeral order -> driver location projection used for live
// tracking. Entries expire on their own; absence is a normal result, never an error.
type LocationCache interface {
	// Put upserts the entry for orderID and restarts its expiration.
	Put(ctx context.Context, orderID int64, location TrackedLocation) error

	// Get returns the entry and true, or false when nothing is tracked for the order.
	Get(ctx context.Context, orderID int64) (TrackedLocation, bool, error)

	// Delete removes the entry. Deleting a missing entry is not an error.
	Delete(ctx context.Context, orderID int64) error
}
