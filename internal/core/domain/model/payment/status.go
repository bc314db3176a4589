package payment

import (
	"fmt"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of a payment transaction.
//
//	Pending ──┬──> Successful
//	          └──> Failed
type Status int

const (
	Unknown Status = iota
	Pending
	Successful
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Successful: "SUCCESSFUL",
		Failed:     "FAILED",
	}
}

// ParseStatus converts a persisted or wire name back to Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid payment status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the transaction was already confirmed.
func (s Status) IsTerminal() bool {
	return s == Successful || s == Failed
}
