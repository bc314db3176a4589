package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Decode unmarshals body into the concrete event registered for eventType.
func Decode(eventType string, body []byte) (Event, error) {
	var (
		event Event
		err   error
	)

	switch eventType {
	case TypeOrderReadyForPickup:
		event, err = decodeAs[OrderReadyForPickup](body)
	case TypePaymentOutcome:
		event, err = decodeAs[PaymentOutcome](body)
		if err == nil {
			err = checkPaymentStatus(event.(PaymentOutcome).Status)
		}
	case TypeDriverAssigned:
		event, err = decodeAs[DriverAssigned](body)
	case TypeOrderPickedUp:
		event, err = decodeAs[OrderPickedUp](body)
	case TypeOrderDelivered:
		event, err = decodeAs[OrderDelivered](body)
	case TypeDriverLocationUpdated:
		event, err = decodeAs[DriverLocationUpdated](body)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("event type", fmt.Errorf("%q is not a known event type", eventType))
	}

	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(eventType, err)
	}
	return event, nil
}

func decodeAs[T Event](body []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func checkPaymentStatus(status string) error {
	if strings.EqualFold(status, PaymentStatusSuccessful) || strings.EqualFold(status, PaymentStatusFailed) {
		return nil
	}
	return fmt.Errorf("status %q is neither %s nor %s", status, PaymentStatusSuccessful, PaymentStatusFailed)
}
