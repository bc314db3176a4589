package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
)

// InitiatePaymentCommandHandler creates the single PENDING transaction of an order.
type InitiatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

func NewInitiatePaymentCommandHandler(uowFactory PaymentUoWFactory) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns an AlreadyExistsError when the order already has a transaction.
// The unique index on the order id backs the pre-check when two requests race.
func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (*payment.Transaction, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tx, err := payment.NewTransaction(cmd.OrderID(), cmd.Amount(), cmd.Currency(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PaymentRepository()

	exists, err := repo.ExistsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.NewAlreadyExistsError("payment for order", cmd.OrderID())
	}

	if err = repo.Add(ctx, tx); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return tx, nil
}
