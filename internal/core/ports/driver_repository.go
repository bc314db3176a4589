package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/driver"
)

// DriverRepository defines the persistence contract for driver profiles.
type DriverRepository interface {
	// Add persists a new profile.
	// Returns an AlreadyExistsError when a profile with the same driver id exists.
	Add(ctx context.Context, profile *driver.Profile) error

	Update(ctx context.Context, profile *driver.Profile) error

	// Get retrieves a profile. Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, driverID int64) (*driver.Profile, error)

	// GetForUpdate is Get that also locks the profile row. Claims and releases go through
	// it so that two assignments can never reserve the same driver.
	GetForUpdate(ctx context.Context, driverID int64) (*driver.Profile, error)
}
