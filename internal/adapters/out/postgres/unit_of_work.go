// Package postgres provides the GORM-based implementation of the Unit of Work pattern.
// The Unit of Work maintains the transaction of one business operation and hands out
// repositories bound to it, so every read and write of a saga step sees the same snapshot.
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... mutate o
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - GetForUpdate takes a row lock (SELECT ... FOR UPDATE) held until Commit or Rollback
//
// Repositories map unique-key violations to errs.AlreadyExistsError; this requires the
// *gorm.DB to be opened with gorm.Config{TranslateError: true}.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"fooddelivery/internal/adapters/out/postgres/assignmentrepo"
	"fooddelivery/internal/adapters/out/postgres/driverrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/core/ports"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction for a business operation.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin again on an open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes all changes permanent and closes the transaction.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes and closes the transaction. After Commit it returns
// gorm.ErrInvalidTransaction, which the deferred rollback in command handlers ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository runs inside the current transaction if one is active,
// otherwise directly on the connection pool.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
