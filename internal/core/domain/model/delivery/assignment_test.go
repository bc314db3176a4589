package delivery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/pkg/errs"
)

var assignedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func restore(t *testing.T, status delivery.Status) *delivery.Assignment {
	t.Helper()

	a, err := delivery.RestoreAssignment(9, 42, 5, status, assignedAt, nil, nil)
	require.NoError(t, err)
	return a
}

func TestNewAssignment(t *testing.T) {
	a, err := delivery.NewAssignment(42, 5, assignedAt)

	require.NoError(t, err)
	require.NoError(t, a.Validate())
	assert.Equal(t, delivery.Assigned, a.Status())
	assert.Equal(t, int64(42), a.OrderID())
	assert.Equal(t, int64(5), a.DriverID())
	assert.Nil(t, a.PickedUpAt())
	assert.Nil(t, a.DeliveredAt())

	_, err = delivery.NewAssignment(0, 0, assignedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order id")
	assert.Contains(t, err.Error(), "driver id")
}

func TestAssignment_UpdateStatus(t *testing.T) {
	at := assignedAt.Add(10 * time.Minute)

	tests := []struct {
		name        string
		from        delivery.Status
		requested   delivery.Status
		wantChanged bool
		wantErr     error
		wantStatus  delivery.Status
	}{
		{"pick up assigned", delivery.Assigned, delivery.PickedUp, true, nil, delivery.PickedUp},
		{"deliver picked up", delivery.PickedUp, delivery.Delivered, true, nil, delivery.Delivered},
		{"deliver straight from assigned", delivery.Assigned, delivery.Delivered, false, errs.ErrInvalidState, delivery.Assigned},
		{"fail assigned", delivery.Assigned, delivery.FailedDelivery, true, nil, delivery.FailedDelivery},
		{"fail picked up", delivery.PickedUp, delivery.FailedDelivery, true, nil, delivery.FailedDelivery},
		{"pick up twice", delivery.PickedUp, delivery.PickedUp, false, nil, delivery.PickedUp},
		{"back to assigned", delivery.PickedUp, delivery.Assigned, false, nil, delivery.PickedUp},
		{"deliver twice", delivery.Delivered, delivery.Delivered, false, nil, delivery.Delivered},
		{"fail after delivered", delivery.Delivered, delivery.FailedDelivery, false, nil, delivery.Delivered},
		{"pick up after failure", delivery.FailedDelivery, delivery.PickedUp, false, nil, delivery.FailedDelivery},
		{"unknown requested", delivery.Assigned, delivery.Unknown, false, errs.ErrValueIsInvalid, delivery.Assigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := restore(t, tt.from)

			changed, err := a.UpdateStatus(tt.requested, at)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantStatus, a.Status())
		})
	}
}

func TestAssignment_UpdateStatus_RecordsTimestamps(t *testing.T) {
	a := restore(t, delivery.Assigned)
	pickedUp := assignedAt.Add(5 * time.Minute)
	delivered := assignedAt.Add(25 * time.Minute)

	_, err := a.UpdateStatus(delivery.PickedUp, pickedUp)
	require.NoError(t, err)
	_, err = a.UpdateStatus(delivery.Delivered, delivered)
	require.NoError(t, err)

	require.NotNil(t, a.PickedUpAt())
	require.NotNil(t, a.DeliveredAt())
	assert.Equal(t, pickedUp, *a.PickedUpAt())
	assert.Equal(t, delivered, *a.DeliveredAt())
	assert.True(t, a.Status().IsTerminal())
	assert.False(t, a.Status().IsActive())
}

func TestParseStatus(t *testing.T) {
	s, err := delivery.ParseStatus("FAILED_DELIVERY")
	require.NoError(t, err)
	assert.Equal(t, delivery.FailedDelivery, s)

	_, err = delivery.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
