package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ApplyPaymentOutcomeCommandHandler is the first order saga step. A successful payment
// moves the order to PREPARING and announces OrderReadyForPickup; a failed one ends the
// saga in PAYMENT_FAILED.
//
// The guard check and the write run under a row lock in one transaction. The event is
// published only after the commit.
type ApplyPaymentOutcomeCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

func NewApplyPaymentOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) ApplyPaymentOutcomeCommandHandler {
	return ApplyPaymentOutcomeCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns OutcomeNotFound for an unknown order and OutcomeStale when the order
// already left RECEIVED/PENDING_PAYMENT. Neither is an error.
func (h ApplyPaymentOutcomeCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentOutcomeCommand) (Outcome, error) {
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

	err = o.ApplyPaymentOutcome(cmd.Successful(), time.Now().UTC())
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

	if !cmd.Successful() {
		return OutcomeApplied, nil
	}

	event := events.OrderReadyForPickup{OrderID: o.ID(), RestaurantID: o.RestaurantID()}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return OutcomeApplied, fmt.Errorf("order %d committed but %s was not published: %w", o.ID(), event.Type(), err)
	}

	return OutcomeApplied, nil
}
