package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/pkg/errs"
)

// RegisterDriverCommandHandler creates an offline profile. Registering an existing driver
// returns the stored profile untouched.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the profile and whether it was created by this call.
func (h RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) (*driver.Profile, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DriverRepository()

	existing, err := repo.Get(ctx, cmd.DriverID())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	profile, err := driver.NewProfile(cmd.DriverID(), cmd.VehicleDetails(), time.Now().UTC())
	if err != nil {
		return nil, false, err
	}

	if err = repo.Add(ctx, profile); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	return profile, true, nil
}
