package commands

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand is a driver reporting progress on an assignment.
type UpdateDeliveryStatusCommand struct {
	assignmentID int64
	status       delivery.Status

	guard guard.ConstructorGuard
}

func NewUpdateDeliveryStatusCommand(assignmentID int64, status delivery.Status) (UpdateDeliveryStatusCommand, error) {
	var idErr error
	if assignmentID <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("assignment id", fmt.Errorf("%d is not positive", assignmentID))
	}

	if err := errors.Join(idErr, status.Validate()); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return UpdateDeliveryStatusCommand{
		assignmentID: assignmentID,
		status:       status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

func (c UpdateDeliveryStatusCommand) AssignmentID() int64 {
	return c.assignmentID
}

func (c UpdateDeliveryStatusCommand) Status() delivery.Status {
	return c.status
}
