package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// AdvanceOrderStatusCommandHandler applies the delivery-driven order saga steps.
// Events that do not match the current status (duplicates, stale or out-of-order
// deliveries) leave the order untouched, including its updated timestamp.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewAdvanceOrderStatusCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	switch cmd.Target() {
	case order.Assigned:
		err = o.MarkAssigned(now)
	case order.OutForDelivery:
		err = o.MarkOutForDelivery(now)
	case order.Delivered:
		err = o.MarkDelivered(now)
	default:
		return "", fmt.Errorf("unsupported saga target %s", cmd.Target())
	}

	if errors.Is(err, errs.ErrInvalidState) {
		return OutcomeStale, nil
	}
	if err != nil {
		return "", err
	}

	if err = repo.Update(ctx, o); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return OutcomeApplied, nil
}
