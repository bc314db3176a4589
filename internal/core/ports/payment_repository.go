package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment transactions.
type PaymentRepository interface {
	// Add persists a new transaction and assigns the generated id.
	// Returns an AlreadyExistsError when the order already has a transaction.
	Add(ctx context.Context, tx *payment.Transaction) error

	Update(ctx context.Context, tx *payment.Transaction) error

	// GetForUpdate loads and locks a transaction.
	// Returns an ObjectNotFoundError when the id is unknown.
	GetForUpdate(ctx context.Context, id int64) (*payment.Transaction, error)

	// ExistsForOrder reports whether a transaction was already initiated for the order.
	ExistsForOrder(ctx context.Context, orderID int64) (bool, error)
}
