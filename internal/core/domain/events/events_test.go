package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/domain/events"
	"fooddelivery/internal/pkg/errs"
)

func TestPaymentOutcome_WireFormat(t *testing.T) {
	e := events.PaymentOutcome{
		OrderID:       42,
		TransactionID: 11,
		Status:        events.PaymentStatusFailed,
		Amount:        decimal.RequireFromString("21.25"),
		FailureReason: "Mock payment failure simulation",
	}

	body, err := json.Marshal(e)

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"orderId":42,"transactionId":11,"status":"FAILED","amount":"21.25","failureReason":"Mock payment failure simulation"}`,
		string(body))
}

func TestPaymentOutcome_OmitsEmptyFailureReason(t *testing.T) {
	body, err := json.Marshal(events.PaymentOutcome{OrderID: 42, Status: events.PaymentStatusSuccessful, Amount: decimal.NewFromInt(5)})

	require.NoError(t, err)
	assert.NotContains(t, string(body), "failureReason")
}

func TestDecode(t *testing.T) {
	t.Run("order ready for pickup", func(t *testing.T) {
		e, err := events.Decode(events.TypeOrderReadyForPickup, []byte(`{"orderId":42,"restaurantId":7}`))

		require.NoError(t, err)
		assert.Equal(t, events.OrderReadyForPickup{OrderID: 42, RestaurantID: 7}, e)
		assert.Equal(t, "order.ready_for_pickup", e.Type())
		assert.Equal(t, int64(42), e.Key())
	})

	t.Run("driver location updated", func(t *testing.T) {
		e, err := events.Decode(events.TypeDriverLocationUpdated,
			[]byte(`{"driverId":5,"latitude":52.5,"longitude":13.4,"timestamp":"2024-05-01T12:00:00Z"}`))

		require.NoError(t, err)
		loc, ok := e.(events.DriverLocationUpdated)
		require.True(t, ok)
		assert.Equal(t, int64(5), loc.DriverID)
		assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), loc.Timestamp)
	})

	t.Run("payment outcome with numeric amount", func(t *testing.T) {
		e, err := events.Decode(events.TypePaymentOutcome, []byte(`{"orderId":42,"transactionId":1,"status":"SUCCESSFUL","amount":19.5}`))

		require.NoError(t, err)
		outcome := e.(events.PaymentOutcome)
		assert.True(t, outcome.Successful())
		assert.True(t, decimal.RequireFromString("19.5").Equal(outcome.Amount))
	})

	t.Run("payment outcome status in lower case", func(t *testing.T) {
		e, err := events.Decode(events.TypePaymentOutcome, []byte(`{"orderId":42,"transactionId":1,"status":"successful","amount":5}`))

		require.NoError(t, err)
		assert.True(t, e.(events.PaymentOutcome).Successful())
	})

	t.Run("payment outcome with unknown status", func(t *testing.T) {
		_, err := events.Decode(events.TypePaymentOutcome, []byte(`{"orderId":42,"transactionId":1,"status":"PENDING","amount":5}`))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("payment outcome without status", func(t *testing.T) {
		_, err := events.Decode(events.TypePaymentOutcome, []byte(`{"orderId":42,"transactionId":1,"amount":5}`))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := events.Decode("order.cancelled", []byte(`{}`))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := events.Decode(events.TypeDriverAssigned, []byte(`{"orderId":"x"`))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPaymentOutcome_Successful(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: "SUCCESSFUL", want: true},
		{status: "successful", want: true},
		{status: "Successful", want: true},
		{status: "FAILED", want: false},
		{status: "failed", want: false},
		{status: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, events.PaymentOutcome{Status: tt.status}.Successful())
		})
	}
}
