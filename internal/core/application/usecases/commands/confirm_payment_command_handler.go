package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/ports"
)

// ConfirmPaymentCommandHandler settles a PENDING transaction and emits PaymentOutcome.
//
// Confirmation is not idempotent: the row lock serializes concurrent confirmations, the
// first one wins and every later one fails with an InvalidStateError without emitting.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
}

func NewConfirmPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	publisher ports.EventPublisher,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*payment.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PaymentRepository()

	tx, err := repo.GetForUpdate(ctx, cmd.TransactionID())
	if err != nil {
		return nil, err
	}

	if err = tx.Confirm(cmd.Succeeded(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, tx); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := events.PaymentOutcome{
		OrderID:       tx.OrderID(),
		TransactionID: tx.ID(),
		Status:        tx.Status().String(),
		Amount:        tx.Amount(),
		FailureReason: tx.FailureReason(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return tx, fmt.Errorf("transaction %d committed but %s was not published: %w", tx.ID(), event.Type(), err)
	}

	return tx, nil
}
