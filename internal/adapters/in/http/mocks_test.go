package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockGetOrderHandler struct{ mock.Mock }

func (m *MockGetOrderHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderResponse), args.Error(1)
}

type MockListUserOrdersHandler struct{ mock.Mock }

func (m *MockListUserOrdersHandler) Handle(ctx context.Context, query queries.ListUserOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderResponse), args.Error(1)
}

type MockInitiatePaymentHandler struct{ mock.Mock }

func (m *MockInitiatePaymentHandler) Handle(ctx context.Context, cmd commands.InitiatePaymentCommand) (*payment.Transaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

type MockConfirmPaymentHandler struct{ mock.Mock }

func (m *MockConfirmPaymentHandler) Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*payment.Transaction, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Transaction), args.Error(1)
}

type MockUpdateDeliveryStatusHandler struct{ mock.Mock }

func (m *MockUpdateDeliveryStatusHandler) Handle(
	ctx context.Context,
	cmd commands.UpdateDeliveryStatusCommand,
) (commands.UpdateDeliveryStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.UpdateDeliveryStatusResult), args.Error(1)
}

type MockTrackedLocationHandler struct{ mock.Mock }

func (m *MockTrackedLocationHandler) Handle(
	ctx context.Context,
	query queries.GetTrackedLocationQuery,
) (queries.TrackedLocationResponse, bool, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.TrackedLocationResponse), args.Bool(1), args.Error(2)
}

type MockRegisterDriverHandler struct{ mock.Mock }

func (m *MockRegisterDriverHandler) Handle(ctx context.Context, cmd commands.RegisterDriverCommand) (*driver.Profile, bool, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*driver.Profile), args.Bool(1), args.Error(2)
}

type MockListAvailableDriversHandler struct{ mock.Mock }

func (m *MockListAvailableDriversHandler) Handle(
	ctx context.Context,
	query queries.ListAvailableDriversQuery,
) ([]queries.AvailableDriverResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.AvailableDriverResponse), args.Error(1)
}

type MockSetDriverAvailabilityHandler struct{ mock.Mock }

func (m *MockSetDriverAvailabilityHandler) Handle(ctx context.Context, cmd commands.SetDriverAvailabilityCommand) (*driver.Profile, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Profile), args.Error(1)
}

type MockUpdateDriverLocationHandler struct{ mock.Mock }

func (m *MockUpdateDriverLocationHandler) Handle(ctx context.Context, cmd commands.UpdateDriverLocationCommand) (*driver.Profile, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Profile), args.Error(1)
}

type MockClaimDriverHandler struct{ mock.Mock }

func (m *MockClaimDriverHandler) Handle(ctx context.Context, cmd commands.ClaimDriverCommand) (bool, error) {
	args := m.Called(ctx, cmd)
	return args.Bool(0), args.Error(1)
}
