package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// TrackDriverLocationCommandHandler projects driver positions into the location cache,
// keyed by the order the driver is currently delivering. Positions of drivers without an
// active assignment are discarded and never create a cache entry.
type TrackDriverLocationCommandHandler struct {
	uowFactory AssignmentUoWFactory
	cache      ports.LocationCache
}

func NewTrackDriverLocationCommandHandler(
	uowFactory AssignmentUoWFactory,
	cache ports.LocationCache,
) TrackDriverLocationCommandHandler {
	return TrackDriverLocationCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (h TrackDriverLocationCommandHandler) Handle(ctx context.Context, cmd TrackDriverLocationCommand) (Outcome, error) {
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

	assignment, err := uow.AssignmentRepository().FindActiveByDriver(ctx, cmd.DriverID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return OutcomeNoActiveAssignment, nil
	}
	if err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	if err = h.cache.Put(ctx, assignment.OrderID(), ports.TrackedLocation{
		Latitude:  cmd.Location().Latitude(),
		Longitude: cmd.Location().Longitude(),
		Timestamp: cmd.Timestamp(),
	}); err != nil {
		return "", err
	}

	return OutcomeApplied, nil
}
