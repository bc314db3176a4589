package driver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrProfileIsNotConstructed is returned when using an improperly initialized Profile.
	ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")
)

// Profile represents a delivery driver as known to the driver service.
// It is an aggregate root that manages availability, the last reported location and the
// reservation that keeps a driver from being assigned to two orders at once.
//
// Business rules:
//   - Driver id is supplied by the caller (it is the id of the user account) and is positive
//   - currentOrderID is non-nil while the driver is reserved for an order
//   - Only an available driver with no reservation can be claimed
//
// Example usage:
//
//	p, err := driver.NewProfile(5, "Blue scooter AB-123", time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
//	p.SetAvailability(true, time.Now())
type Profile struct {
	// driverID uniquely identifies the driver
	driverID int64
	// vehicleDetails is a free-form description of the vehicle
	vehicleDetails string
	// location is the last reported position, nil until the first update
	location *kernel.Location
	// lastLocationAt is the time of the last location update
	lastLocationAt *time.Time
	// available tells whether the driver accepts new orders
	available bool
	// availabilityUpdatedAt is the time availability last changed
	availabilityUpdatedAt time.Time
	// currentOrderID is the order the driver is reserved for, nil when free
	currentOrderID *int64
	createdAt      time.Time
	updatedAt      time.Time
	// guard ensures the profile was properly constructed
	guard guard.ConstructorGuard
}

// NewProfile creates an offline profile without location.
func NewProfile(driverID int64, vehicleDetails string, now time.Time) (*Profile, error) {
	p := &Profile{
		availabilityUpdatedAt: now,
		createdAt:             now,
		updatedAt:             now,
		guard:                 guard.NewConstructorGuard(),
	}

	if err := p.setDriverID(driverID); err != nil {
		return nil, err
	}
	p.vehicleDetails = strings.TrimSpace(vehicleDetails)

	return p, nil
}

// RestoreProfile reconstructs a Profile from persistent storage.
//
// Parameters:
//   - location and lastLocationAt are nil when the driver never reported a position
//   - currentOrderID is nil when the driver is not reserved
func RestoreProfile(
	driverID int64,
	vehicleDetails string,
	location *kernel.Location,
	lastLocationAt *time.Time,
	available bool,
	availabilityUpdatedAt time.Time,
	currentOrderID *int64,
	createdAt, updatedAt time.Time,
) (*Profile, error) {
	p := &Profile{
		vehicleDetails:        vehicleDetails,
		lastLocationAt:        lastLocationAt,
		available:             available,
		availabilityUpdatedAt: availabilityUpdatedAt,
		currentOrderID:        currentOrderID,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
		guard:                 guard.NewConstructorGuard(),
	}

	var locationErr error
	if location != nil {
		locationErr = location.Validate()
		loc := *location
		p.location = &loc
	}

	if err := errors.Join(p.setDriverID(driverID), locationErr); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks that the profile was built through a constructor.
func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) DriverID() int64 {
	return p.driverID
}

func (p *Profile) VehicleDetails() string {
	return p.vehicleDetails
}

// Location returns the last reported position, or nil.
func (p *Profile) Location() *kernel.Location {
	if p.location == nil {
		return nil
	}
	loc := *p.location
	return &loc
}

func (p *Profile) LastLocationAt() *time.Time {
	return p.lastLocationAt
}

func (p *Profile) IsAvailable() bool {
	return p.available
}

func (p *Profile) AvailabilityUpdatedAt() time.Time {
	return p.availabilityUpdatedAt
}

// CurrentOrderID returns the order the driver is reserved for, or nil.
func (p *Profile) CurrentOrderID() *int64 {
	if p.currentOrderID == nil {
		return nil
	}
	id := *p.currentOrderID
	return &id
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// IsAssignable reports whether the driver can be claimed for a new order.
func (p *Profile) IsAssignable() bool {
	return p.available && p.currentOrderID == nil
}

// SetAvailability sets the availability flag and stamps the change time.
func (p *Profile) SetAvailability(available bool, at time.Time) {
	p.available = available
	p.availabilityUpdatedAt = at
	p.updatedAt = at
}

// UpdateLocation records a new position.
func (p *Profile) UpdateLocation(location kernel.Location, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	p.location = &location
	p.lastLocationAt = &at
	p.updatedAt = at
	return nil
}

// Claim reserves the driver for orderID.
//
// Claiming an order the driver already holds succeeds without changes. A driver that is
// unavailable or reserved for another order yields an InvalidStateError.
func (p *Profile) Claim(orderID int64, at time.Time) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", orderID))
	}

	if p.currentOrderID != nil {
		if *p.currentOrderID == orderID {
			return nil
		}
		return errs.NewInvalidStateError(p.entityName(), fmt.Sprintf("claimed for order %d", *p.currentOrderID),
			fmt.Sprintf("claimed for order %d", orderID))
	}

	if !p.available {
		return errs.NewInvalidStateError(p.entityName(), "unavailable", fmt.Sprintf("claimed for order %d", orderID))
	}

	p.currentOrderID = &orderID
	p.updatedAt = at
	return nil
}

// Release frees the driver from orderID. Releasing a driver that holds no reservation is a
// no-op; releasing a reservation held for a different order yields an InvalidStateError.
func (p *Profile) Release(orderID int64, at time.Time) error {
	if p.currentOrderID == nil {
		return nil
	}
	if *p.currentOrderID != orderID {
		return errs.NewInvalidStateError(p.entityName(), fmt.Sprintf("claimed for order %d", *p.currentOrderID),
			fmt.Sprintf("released from order %d", orderID))
	}

	p.currentOrderID = nil
	p.updatedAt = at
	return nil
}

func (p *Profile) entityName() string {
	return fmt.Sprintf("driver %d", p.driverID)
}

func (p *Profile) setDriverID(driverID int64) error {
	if driverID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("driver id", fmt.Errorf("%d is not positive", driverID))
	}
	p.driverID = driverID
	return nil
}
