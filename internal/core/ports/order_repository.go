package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items and assigns the generated id
	// to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and timestamp changes of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	// Returns an ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get that also locks the order row until the transaction ends, so the
	// guard check and the write of a saga step cannot interleave with another step.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)
}
