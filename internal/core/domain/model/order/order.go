package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrIdentityAlreadyAssigned is returned by AssignIdentity on an order that already has an id.
	ErrIdentityAlreadyAssigned = errors.New("order identity is already assigned")
)

// Order is the aggregate root of the order service. It owns the order's line items,
// the delivery address snapshot and the saga status.
//
// Order follows these invariants:
//   - User id and restaurant id are positive
//   - At least one line item, every item with a positive quantity
//   - Total amount equals the sum of line item subtotals at creation time
//   - Status only moves along the edges of the Status transition table
//
// The id is zero until the order is persisted; the store assigns it via AssignIdentity.
type Order struct {
	id              int64
	userID          int64
	restaurantID    int64
	items           []LineItem
	totalAmount     decimal.Decimal
	deliveryAddress string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewOrder creates a RECEIVED order and computes its total from the line items.
//
// Example:
//
//	item, _ := order.NewLineItem(3, "Margherita", 2, decimal.RequireFromString("9.50"))
//	o, err := order.NewOrder(100, 7, []order.LineItem{item}, "Main St 1", time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(o.TotalAmount()) // 19
func NewOrder(userID, restaurantID int64, items []LineItem, deliveryAddress string, now time.Time) (*Order, error) {
	o := &Order{
		status:        Received,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	o.totalAmount = decimal.Zero
	for _, item := range o.items {
		o.totalAmount = o.totalAmount.Add(item.Subtotal())
	}

	return o, nil
}

// RestoreOrder rebuilds an Order from persistent storage without recomputing the total,
// since the stored total is the price the customer agreed to.
func RestoreOrder(
	id, userID, restaurantID int64,
	items []LineItem,
	totalAmount decimal.Decimal,
	deliveryAddress string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		id:            id,
		totalAmount:   totalAmount,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}

	if err := errors.Join(
		idErr,
		o.setUserID(userID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order instance was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// AssignIdentity sets the store-generated id. It may only be called once.
func (o *Order) AssignIdentity(id int64) error {
	if o.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}
	o.id = id
	return nil
}

func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) UserID() int64 {
	return o.userID
}

func (o *Order) RestaurantID() int64 {
	return o.restaurantID
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ApplyPaymentOutcome moves a RECEIVED or PENDING_PAYMENT order to PREPARING when the
// payment succeeded and to PAYMENT_FAILED otherwise.
func (o *Order) ApplyPaymentOutcome(successful bool, at time.Time) error {
	if o.status != Received && o.status != PendingPayment {
		next := PaymentFailed
		if successful {
			next = Preparing
		}
		return errs.NewInvalidStateError(o.entityName(), o.status, next)
	}

	if successful {
		return o.transition(Preparing, at)
	}
	return o.transition(PaymentFailed, at)
}

// MarkAssigned moves a PREPARING order to ASSIGNED.
func (o *Order) MarkAssigned(at time.Time) error {
	return o.transition(Assigned, at)
}

// MarkOutForDelivery moves an ASSIGNED order to OUT_FOR_DELIVERY.
func (o *Order) MarkOutForDelivery(at time.Time) error {
	return o.transition(OutForDelivery, at)
}

// MarkDelivered moves an OUT_FOR_DELIVERY order to DELIVERED.
func (o *Order) MarkDelivered(at time.Time) error {
	return o.transition(Delivered, at)
}

// transition leaves the order untouched, including updatedAt, when the edge is not allowed.
func (o *Order) transition(next Status, at time.Time) error {
	if !o.status.CanTransitionTo(next) {
		return errs.NewInvalidStateError(o.entityName(), o.status, next)
	}

	o.status = next
	o.updatedAt = at
	return nil
}

func (o *Order) entityName() string {
	return fmt.Sprintf("order %d", o.id)
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not positive", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setRestaurantID(restaurantID int64) error {
	if restaurantID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("restaurant id", fmt.Errorf("%d is not positive", restaurantID))
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if item.quantity <= 0 || item.itemID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item #%d was not created via NewLineItem", i))
		}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("delivery address")
	}
	o.deliveryAddress = address
	return nil
}
