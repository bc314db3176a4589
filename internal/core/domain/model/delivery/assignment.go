package delivery

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
)

var (
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
	ErrIdentityAlreadyAssigned    = errors.New("assignment identity is already assigned")
)

// Assignment binds a driver to an order. At most one exists per order.
type Assignment struct {
	id          int64
	orderID     int64
	driverID    int64
	status      Status
	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	isConstructed bool
}

// NewAssignment creates an ASSIGNED assignment.
func NewAssignment(orderID, driverID int64, now time.Time) (*Assignment, error) {
	a := &Assignment{
		status:        Assigned,
		assignedAt:    now,
		isConstructed: true,
	}

	if err := errors.Join(a.setOrderID(orderID), a.setDriverID(driverID)); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment rebuilds an Assignment from persistent storage.
func RestoreAssignment(
	id, orderID, driverID int64,
	status Status,
	assignedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
) (*Assignment, error) {
	a := &Assignment{
		id:            id,
		assignedAt:    assignedAt,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		isConstructed: true,
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("assignment id", fmt.Errorf("%d is not positive", id))
	}

	if err := errors.Join(idErr, a.setOrderID(orderID), a.setDriverID(driverID), status.Validate()); err != nil {
		return nil, err
	}
	a.status = status

	return a, nil
}

func (a *Assignment) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignmentIsNotConstructed
	}
	return nil
}

// AssignIdentity sets the store-generated id. It may only be called once.
func (a *Assignment) AssignIdentity(id int64) error {
	if a.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("assignment id", fmt.Errorf("%d is not positive", id))
	}
	a.id = id
	return nil
}

func (a *Assignment) ID() int64 {
	return a.id
}

func (a *Assignment) OrderID() int64 {
	return a.orderID
}

func (a *Assignment) DriverID() int64 {
	return a.driverID
}

func (a *Assignment) Status() Status {
	return a.status
}

func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// PickedUpAt is nil until the driver picks the order up.
func (a *Assignment) PickedUpAt() *time.Time {
	return a.pickedUpAt
}

// DeliveredAt is set when the assignment reaches a terminal status.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// UpdateStatus applies a requested status.
//
// It returns changed=true when the edge exists and was applied. It returns an
// InvalidStateError only for DELIVERED requested from ASSIGNED; every other request that
// matches no edge returns changed=false with a nil error.
func (a *Assignment) UpdateStatus(requested Status, at time.Time) (bool, error) {
	if err := requested.Validate(); err != nil {
		return false, err
	}

	switch {
	case requested == PickedUp && a.status == Assigned:
		a.status = PickedUp
		a.pickedUpAt = &at
		return true, nil

	case requested == Delivered && a.status == PickedUp:
		a.status = Delivered
		a.deliveredAt = &at
		return true, nil

	case requested == Delivered && a.status == Assigned:
		return false, errs.NewInvalidStateError(fmt.Sprintf("assignment %d", a.id), a.status, requested)

	case requested == FailedDelivery && !a.status.IsTerminal():
		a.status = FailedDelivery
		a.deliveredAt = &at
		return true, nil
	}

	return false, nil
}

func (a *Assignment) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID))
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setDriverID(driverID int64) error {
	if driverID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is not positive", driverID))
	}
	a.driverID = driverID
	return nil
}
