// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence
// and, after a successful commit, publication of the resulting integration event.
package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each service only sees the repositories it owns.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderUoW manages transactions of the order service.
	OrderUoW interface {
		TxManager
		OrderRepository() ports.OrderRepository
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PaymentUoW manages transactions of the payment service.
	PaymentUoW interface {
		TxManager
		PaymentRepository() ports.PaymentRepository
	}

	// PaymentUoWFactory creates new payment unit of work instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// AssignmentUoW manages transactions of the delivery service.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.AssignmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	AssignmentUoW interface {
		TxManager
		AssignmentRepository() ports.AssignmentRepository
	}

	// AssignmentUoWFactory creates new delivery unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// DriverUoW manages transactions of the driver service.
	DriverUoW interface {
		TxManager
		DriverRepository() ports.DriverRepository
	}

	// DriverUoWFactory creates new driver unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}
)
