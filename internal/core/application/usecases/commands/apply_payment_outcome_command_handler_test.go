package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

func TestNewApplyPaymentOutcomeCommand(t *testing.T) {
	cmd, err := commands.NewApplyPaymentOutcomeCommand(42, true)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(42), cmd.OrderID())
	assert.True(t, cmd.Successful())

	_, err = commands.NewApplyPaymentOutcomeCommand(0, true)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero commands.ApplyPaymentOutcomeCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrApplyPaymentOutcomeCommandIsNotConstructed)
}

func TestApplyPaymentOutcomeCommandHandler_SuccessfulPaymentEmitsReadyForPickup(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Received)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, int64(42)).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("Publish", ctx, events.OrderReadyForPickup{OrderID: 42, RestaurantID: 7}).Return(nil).Once(),
	)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, true)

	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.Equal(t, order.Preparing, o.Status())
	publisher.AssertNumberOfCalls(t, "Publish", 1)
	mock.AssertExpectationsForObjects(t, factory, uow, repo, publisher)
}

func TestApplyPaymentOutcomeCommandHandler_FailedPaymentEmitsNothing(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.PendingPayment)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, false)

	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.Equal(t, order.PaymentFailed, o.Status())
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_DuplicateOutcomeIsStale(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Preparing)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, true)

	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeStale, outcome)
	assert.Equal(t, order.Preparing, o.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_UnknownOrderIsDropped(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(nil, errs.NewObjectNotFoundError("order", int64(42))).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, true)

	outcome, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeNotFound, outcome)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_CommitErrorPublishesNothing(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Received)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	commitErr := errors.New("connection reset")

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(commitErr).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, true)

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commitErr)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestApplyPaymentOutcomeCommandHandler_PublishErrorIsReported(t *testing.T) {
	ctx := t.Context()
	o := orderInStatus(t, order.Received)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	publisher := new(MockEventPublisher)
	busErr := errors.New("channel closed")

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, int64(42)).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(busErr).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewApplyPaymentOutcomeCommandHandler(factory, publisher)
	cmd, _ := commands.NewApplyPaymentOutcomeCommand(42, true)

	outcome, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, busErr)
	assert.Equal(t, commands.OutcomeApplied, outcome)
	assert.Contains(t, err.Error(), "order.ready_for_pickup")
}

func TestApplyPaymentOutcomeCommandHandler_InvalidCommand(t *testing.T) {
	handler := commands.NewApplyPaymentOutcomeCommandHandler(new(MockOrderUoWFactory), new(MockEventPublisher))

	_, err := handler.Handle(t.Context(), commands.ApplyPaymentOutcomeCommand{})

	require.ErrorIs(t, err, commands.ErrApplyPaymentOutcomeCommandIsNotConstructed)
}
