package commands_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetForUpdate(ctx context.Context, id int64) (*payment.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *delivery.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *delivery.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) GetForUpdate(ctx context.Context, id int64) (*delivery.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveByDriver(ctx context.Context, driverID int64) (*delivery.Assignment, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Assignment), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, p *driver.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, p *driver.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, driverID int64) (*driver.Profile, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Profile), args.Error(1)
}

func (m *MockDriverRepository) GetForUpdate(ctx context.Context, driverID int64) (*driver.Profile, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Profile), args.Error(1)
}

// MockUoW satisfies every service-specific unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPaymentUoWFactory struct{ mock.Mock }

func (m *MockPaymentUoWFactory) Create() commands.PaymentUoW {
	args := m.Called()
	return args.Get(0).(commands.PaymentUoW)
}

type MockAssignmentUoWFactory struct{ mock.Mock }

func (m *MockAssignmentUoWFactory) Create() commands.AssignmentUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignmentUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLocationCache struct{ mock.Mock }

func (m *MockLocationCache) Put(ctx context.Context, orderID int64, location ports.TrackedLocation) error {
	args := m.Called(ctx, orderID, location)
	return args.Error(0)
}

func (m *MockLocationCache) Get(ctx context.Context, orderID int64) (ports.TrackedLocation, bool, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.TrackedLocation), args.Bool(1), args.Error(2)
}

func (m *MockLocationCache) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockDriverDirectory struct{ mock.Mock }

func (m *MockDriverDirectory) ListAvailable(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockDriverDirectory) Claim(ctx context.Context, driverID, orderID int64) (bool, error) {
	args := m.Called(ctx, driverID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDriverDirectory) Release(ctx context.Context, driverID, orderID int64) error {
	args := m.Called(ctx, driverID, orderID)
	return args.Error(0)
}

type MockMenuCatalog struct{ mock.Mock }

func (m *MockMenuCatalog) GetItemsByIDs(ctx context.Context, ids []int64) ([]ports.MenuItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.MenuItem), args.Error(1)
}
