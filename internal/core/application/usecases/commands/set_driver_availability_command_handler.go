package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
)

// SetDriverAvailabilityCommandHandler updates the availability flag and its timestamp.
// Going offline does not cancel a reservation the driver already holds.
type SetDriverAvailabilityCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewSetDriverAvailabilityCommandHandler(uowFactory DriverUoWFactory) SetDriverAvailabilityCommandHandler {
	return SetDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h SetDriverAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetDriverAvailabilityCommand,
) (*driver.Profile, error) {
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

	repo := uow.DriverRepository()

	profile, err := repo.GetForUpdate(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	profile.SetAvailability(cmd.Available(), time.Now().UTC())

	if err = repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return profile, nil
}
