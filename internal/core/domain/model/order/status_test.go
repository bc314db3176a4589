package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "RECEIVED", order.Received.String())
	assert.Equal(t, "PENDING_PAYMENT", order.PendingPayment.String())
	assert.Equal(t, "OUT_FOR_DELIVERY", order.OutForDelivery.String())
	assert.Equal(t, "UNKNOWN", order.Status(99).String())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []order.Status{
		order.Received, order.PendingPayment, order.Preparing, order.PaymentFailed,
		order.Assigned, order.OutForDelivery, order.Delivered,
	} {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := order.ParseStatus("UNKNOWN")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("preparing")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Delivered.Validate())
	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from    order.Status
		to      order.Status
		allowed bool
	}{
		{order.Received, order.Preparing, true},
		{order.Received, order.PaymentFailed, true},
		{order.PendingPayment, order.Preparing, true},
		{order.Preparing, order.Assigned, true},
		{order.Assigned, order.OutForDelivery, true},
		{order.OutForDelivery, order.Delivered, true},
		{order.Received, order.Assigned, false},
		{order.Preparing, order.PaymentFailed, false},
		{order.Assigned, order.Delivered, false},
		{order.Delivered, order.Received, false},
		{order.PaymentFailed, order.Preparing, false},
		{order.Preparing, order.Preparing, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			next, err := tt.from.TransitionTo(tt.to)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, next)
				return
			}
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, tt.from, next)
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.PaymentFailed.IsTerminal())
	assert.False(t, order.OutForDelivery.IsTerminal())
}
