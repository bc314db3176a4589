package services

import (
	"errors"
	"math/rand/v2"
)

// ErrDriverNotFound is returned when no candidate could be claimed, either because the
// candidate list was empty or because every candidate was taken concurrently.
var ErrDriverNotFound = errors.New("driver not found")

// ClaimFunc tries to reserve driverID. It returns false, nil when the driver was taken by
// someone else, and an error when the reservation could not be attempted at all.
type ClaimFunc func(driverID int64) (bool, error)

// DriverDispatcher chooses the driver for an order.
//
// Selection is uniform over the candidates. When a claim is lost the candidate is dropped
// and the choice is repeated uniformly among the rest, so each remaining driver keeps the
// same probability of being picked.
//
// Example usage:
//
//	dispatcher := services.NewDriverDispatcher()
//	driverID, err := dispatcher.Dispatch([]int64{5, 6, 7}, func(id int64) (bool, error) {
//	    return directory.Claim(ctx, id, orderID)
//	})
//	if errors.Is(err, services.ErrDriverNotFound) {
//	    // nobody to assign right now
//	}
type DriverDispatcher struct {
	intN func(n int) int
}

// NewDriverDispatcher creates a dispatcher backed by the global math/rand/v2 source.
func NewDriverDispatcher() DriverDispatcher {
	return DriverDispatcher{intN: rand.IntN}
}

// NewDriverDispatcherWithRand creates a dispatcher with a custom index generator.
// intN must return a value in [0, n).
func NewDriverDispatcherWithRand(intN func(n int) int) DriverDispatcher {
	return DriverDispatcher{intN: intN}
}

// Dispatch returns the id of the claimed driver. Duplicate candidate ids are considered once.
// The candidates slice is not modified.
func (d DriverDispatcher) Dispatch(candidates []int64, claim ClaimFunc) (int64, error) {
	remaining := make([]int64, 0, len(candidates))
	seen := make(map[int64]struct{}, len(candidates))
	for _, id := range candidates {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		remaining = append(remaining, id)
	}

	intN := d.intN
	if intN == nil {
		intN = rand.IntN
	}

	for len(remaining) > 0 {
		i := intN(len(remaining))
		driverID := remaining[i]

		claimed, err := claim(driverID)
		if err != nil {
			return 0, err
		}
		if claimed {
			return driverID, nil
		}

		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
	}

	return 0, ErrDriverNotFound
}
