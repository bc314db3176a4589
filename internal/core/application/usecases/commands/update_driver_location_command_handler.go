package commands

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/ports"
)

// UpdateDriverLocationCommandHandler stores the driver's position and always emits
// DriverLocationUpdated. Whether the position is tracked for an order is decided by the
// delivery service when it consumes the event.
type UpdateDriverLocationCommandHandler struct {
	uowFactory DriverUoWFactory
	publisher  ports.EventPublisher
}

func NewUpdateDriverLocationCommandHandler(
	uowFactory DriverUoWFactory,
	publisher ports.EventPublisher,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

func (h UpdateDriverLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDriverLocationCommand,
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

	now := time.Now().UTC()
	if err = profile.UpdateLocation(cmd.Location(), now); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	event := events.DriverLocationUpdated{
		DriverID:  profile.DriverID(),
		Latitude:  cmd.Location().Latitude(),
		Longitude: cmd.Location().Longitude(),
		Timestamp: now,
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return profile, fmt.Errorf("location of driver %d stored but %s was not published: %w",
			profile.DriverID(), event.Type(), err)
	}

	return profile, nil
}
