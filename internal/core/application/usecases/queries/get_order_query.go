// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for the HTTP API and background jobs.
package queries

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its line items.
//
// Example:
//
//	query, err := NewGetOrderQuery(42)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID int64) (GetOrderQuery, error) {
	if orderID <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"order id", fmt.Errorf("%d is not positive", orderID))
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() int64 {
	return q.orderID
}

// OrderResponse is the read model of an order.
type OrderResponse struct {
	ID              int64
	UserID          int64
	RestaurantID    int64
	Items           []OrderItemResponse
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItemResponse is a line item as it was priced when the order was placed.
type OrderItemResponse struct {
	ItemID    int64
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}
