package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/pkg/errs"
)

// ClaimDriverCommandHandler performs the driver reservation used by driver assignment.
//
// The profile row is locked for the duration of the check and the write, which turns the
// claim into a compare-and-swap on the reservation: of two concurrent claims for the same
// driver exactly one succeeds.
type ClaimDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewClaimDriverCommandHandler(uowFactory DriverUoWFactory) ClaimDriverCommandHandler {
	return ClaimDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns true when the driver is (or already was) reserved for the order, false when
// the driver is unavailable, reserved for another order, or the order is held by another
// driver. A release returns true once the driver holds no reservation for the order.
// Unknown drivers yield an ObjectNotFoundError.
func (h ClaimDriverCommandHandler) Handle(ctx context.Context, cmd ClaimDriverCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()

	profile, err := repo.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if cmd.IsRelease() {
		err = profile.Release(cmd.OrderID(), now)
	} else {
		err = profile.Claim(cmd.OrderID(), now)
	}
	if errors.Is(err, errs.ErrInvalidState) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// The order is already held by a different driver.
	err = repo.Update(ctx, profile)
	if errors.Is(err, errs.ErrAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
