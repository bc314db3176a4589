package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"
)

// AssignmentRepository defines the persistence contract for delivery assignments.
type AssignmentRepository interface {
	// Add persists a new assignment and assigns the generated id.
	// Returns an AlreadyExistsError when the order already has an assignment.
	Add(ctx context.Context, assignment *delivery.Assignment) error

	Update(ctx context.Context, assignment *delivery.Assignment) error

	// GetForUpdate loads and locks an assignment.
	// Returns an ObjectNotFoundError when the id is unknown.
	GetForUpdate(ctx context.Context, id int64) (*delivery.Assignment, error)

	// ExistsForOrder reports whether the order already has an assignment in any status.
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)

	// FindActiveByDriver returns the driver's ASSIGNED or PICKED_UP assignment.
	// Returns an ObjectNotFoundError when the driver has none.
	FindActiveByDriver(ctx context.Context, driverID int64) (*delivery.Assignment, error)
}
