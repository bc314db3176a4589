package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
)

var fixtureTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// orderInStatus returns order 42 of restaurant 7 in the given status.
func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(3, "Margherita", 2, decimal.RequireFromString("9.50"))
	require.NoError(t, err)

	o, err := order.RestoreOrder(42, 100, 7, []order.LineItem{item}, decimal.RequireFromString("19.00"),
		"Main St 1", status, fixtureTime, fixtureTime)
	require.NoError(t, err)
	return o
}

// assignmentInStatus returns assignment 9 binding driver 5 to order 42.
func assignmentInStatus(t *testing.T, status delivery.Status) *delivery.Assignment {
	t.Helper()

	a, err := delivery.RestoreAssignment(9, 42, 5, status, fixtureTime, nil, nil)
	require.NoError(t, err)
	return a
}
