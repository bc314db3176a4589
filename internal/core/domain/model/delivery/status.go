package delivery

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery assignment.
type Status int

const (
	Unknown Status = iota
	Assigned
	PickedUp
	Delivered
	FailedDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Assigned:       "ASSIGNED",
		PickedUp:       "PICKED_UP",
		Delivered:      "DELIVERED",
		FailedDelivery: "FAILED_DELIVERY",
	}
}

// ParseStatus converts a persisted or wire name back to Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the assignment is finished.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == FailedDelivery
}

// IsActive reports whether the driver is still working on the order.
func (s Status) IsActive() bool {
	return s == Assigned || s == PickedUp
}

// ActiveStatuses lists the statuses in which the driver holds the order.
func ActiveStatuses() []Status {
	return []Status{Assigned, PickedUp}
}
