package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/ports"
)

// UpdateDeliveryStatusResult is the assignment after the update and whether it changed.
type UpdateDeliveryStatusResult struct {
	Assignment *delivery.Assignment
	Changed    bool
}

// UpdateDeliveryStatusCommandHandler applies a driver's status report to an assignment.
//
// After the commit:
//   - PICKED_UP publishes OrderPickedUp, DELIVERED publishes OrderDelivered
//   - a terminal status removes the order's tracked location and frees the driver
//
// Requests that match no transition return Changed=false and have no side effects.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
	publisher  ports.EventPublisher
	cache      ports.LocationCache
	directory  ports.DriverDirectory
}

func NewUpdateDeliveryStatusCommandHandler(
	uowFactory AssignmentUoWFactory,
	publisher ports.EventPublisher,
	cache ports.LocationCache,
	directory ports.DriverDirectory,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		cache:      cache,
		directory:  directory,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateDeliveryStatusCommand,
) (UpdateDeliveryStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.AssignmentRepository()

	assignment, err := repo.GetForUpdate(ctx, cmd.AssignmentID())
	if err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	now := time.Now().UTC()
	changed, err := assignment.UpdateStatus(cmd.Status(), now)
	if err != nil {
		return UpdateDeliveryStatusResult{Assignment: assignment}, err
	}
	if !changed {
		return UpdateDeliveryStatusResult{Assignment: assignment}, nil
	}

	if err = repo.Update(ctx, assignment); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateDeliveryStatusResult{}, err
	}

	result := UpdateDeliveryStatusResult{Assignment: assignment, Changed: true}
	return result, h.afterCommit(ctx, assignment, now)
}

func (h UpdateDeliveryStatusCommandHandler) afterCommit(
	ctx context.Context,
	assignment *delivery.Assignment,
	at time.Time,
) error {
	var sideEffects []error

	var event events.Event
	switch assignment.Status() {
	case delivery.PickedUp:
		event = events.OrderPickedUp{OrderID: assignment.OrderID(), DriverID: assignment.DriverID(), Timestamp: at}
	case delivery.Delivered:
		event = events.OrderDelivered{OrderID: assignment.OrderID(), DriverID: assignment.DriverID(), Timestamp: at}
	}
	if event != nil {
		if err := h.publisher.Publish(ctx, event); err != nil {
			sideEffects = append(sideEffects, fmt.Errorf("publish %s: %w", event.Type(), err))
		}
	}

	if assignment.Status().IsTerminal() {
		if err := h.cache.Delete(ctx, assignment.OrderID()); err != nil {
			sideEffects = append(sideEffects, fmt.Errorf("delete tracked location: %w", err))
		}
		if err := h.directory.Release(ctx, assignment.DriverID(), assignment.OrderID()); err != nil {
			sideEffects = append(sideEffects, fmt.Errorf("release driver %d: %w", assignment.DriverID(), err))
		}
	}

	if err := errors.Join(sideEffects...); err != nil {
		return fmt.Errorf("assignment %d committed as %s: %w", assignment.ID(), assignment.Status(), err)
	}
	return nil
}
