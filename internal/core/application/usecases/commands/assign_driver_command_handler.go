package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// AssignDriverCommandHandler binds a driver to an order that is ready for pickup.
//
// Workflow:
//   - An order that already has an assignment is skipped (duplicate event)
//   - Available drivers come from the driver directory; a failing directory aborts the
//     step with an UpstreamUnavailableError and nothing is written or emitted
//   - The dispatcher picks a driver uniformly and claims it in the directory, re-picking
//     among the rest when a concurrent assignment won the driver
//   - The assignment is persisted ASSIGNED in its own transaction and DriverAssigned is
//     published after commit
//
// Directory calls run before the transaction is opened. A claim is kept when a concurrent
// handler stored the assignment first, since that claim is the one the stored assignment
// refers to. When nobody is available the order stays PREPARING; there is no automatic retry.
type AssignDriverCommandHandler struct {
	uowFactory AssignmentUoWFactory
	directory  ports.DriverDirectory
	dispatcher services.DriverDispatcher
	publisher  ports.EventPublisher
}

func NewAssignDriverCommandHandler(
	uowFactory AssignmentUoWFactory,
	directory ports.DriverDirectory,
	dispatcher services.DriverDispatcher,
	publisher ports.EventPublisher,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()

	exists, err := uow.AssignmentRepository().ExistsForOrder(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}
	if exists {
		return OutcomeDuplicate, nil
	}

	candidates, err := h.directory.ListAvailable(ctx)
	if err != nil {
		return "", asUpstreamError(err)
	}

	driverID, err := h.dispatcher.Dispatch(candidates, func(driverID int64) (bool, error) {
		return h.directory.Claim(ctx, driverID, cmd.OrderID())
	})
	if errors.Is(err, services.ErrDriverNotFound) {
		return OutcomeNoDriversAvailable, nil
	}
	if err != nil {
		return "", asUpstreamError(err)
	}

	assignment, err := delivery.NewAssignment(cmd.OrderID(), driverID, time.Now().UTC())
	if err == nil {
		err = h.store(ctx, uow, assignment)
	}
	if errors.Is(err, errs.ErrAlreadyExists) {
		return OutcomeDuplicate, nil
	}
	if err != nil {
		return "", errors.Join(err, h.releaseUnlessAssigned(ctx, uow, driverID, cmd.OrderID()))
	}

	event := events.DriverAssigned{OrderID: cmd.OrderID(), DriverID: driverID}
	if err = h.publisher.Publish(ctx, event); err != nil {
		return OutcomeApplied, fmt.Errorf("assignment for order %d committed but %s was not published: %w",
			cmd.OrderID(), event.Type(), err)
	}

	return OutcomeApplied, nil
}

func (h AssignDriverCommandHandler) store(ctx context.Context, uow AssignmentUoW, assignment *delivery.Assignment) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.AssignmentRepository().Add(ctx, assignment); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// releaseUnlessAssigned undoes a claim whose assignment could not be stored. The claim stays
// when the order got an assignment anyway, as it then belongs to that assignment.
func (h AssignDriverCommandHandler) releaseUnlessAssigned(
	ctx context.Context,
	uow AssignmentUoW,
	driverID, orderID int64,
) error {
	exists, err := uow.AssignmentRepository().ExistsForOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("check assignment before releasing driver %d: %w", driverID, err)
	}
	if exists {
		return nil
	}

	if err = h.directory.Release(ctx, driverID, orderID); err != nil {
		return fmt.Errorf("release driver %d: %w", driverID, err)
	}
	return nil
}

func asUpstreamError(err error) error {
	if errors.Is(err, errs.ErrUpstreamUnavailable) {
		return err
	}
	return errs.NewUpstreamUnavailableError("driver directory", err)
}
