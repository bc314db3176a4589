package commands

import (
	"errors"
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemRequest is one requested menu item and its quantity.
type OrderItemRequest struct {
	ItemID   int64
	Quantity int
}

// CreateOrderCommand represents a customer placing an order at a restaurant.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(100, 7, []OrderItemRequest{{ItemID: 3, Quantity: 2}}, "Main St 1")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	userID          int64
	restaurantID    int64
	items           []OrderItemRequest
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids, quantities and the delivery address. Requesting the
// same item twice merges the quantities.
func NewCreateOrderCommand(
	userID, restaurantID int64,
	items []OrderItemRequest,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) UserID() int64 {
	return c.userID
}

func (c CreateOrderCommand) RestaurantID() int64 {
	return c.restaurantID
}

// Items returns the requested items in request order, duplicates merged.
func (c CreateOrderCommand) Items() []OrderItemRequest {
	items := make([]OrderItemRequest, len(c.items))
	copy(items, c.items)
	return items
}

// ItemIDs returns the distinct requested item ids.
func (c CreateOrderCommand) ItemIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for _, item := range c.items {
		ids = append(ids, item.ItemID)
	}
	return ids
}

func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c *CreateOrderCommand) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not positive", userID))
	}
	c.userID = userID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", fmt.Errorf("%d is not positive", restaurantID))
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemRequest) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	merged := make([]OrderItemRequest, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, item := range items {
		if item.ItemID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("item id", fmt.Errorf("%d is not positive", item.ItemID))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("item %d: %d is not greater than 0", item.ItemID, item.Quantity))
		}
		if i, ok := index[item.ItemID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ItemID] = len(merged)
		merged = append(merged, item)
	}

	c.items = merged
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	c.deliveryAddress = address
	return nil
}
