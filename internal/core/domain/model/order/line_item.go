package order

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/pkg/errs"
)

// LineItem is a snapshot of one menu item at the moment the order was placed.
// Later menu changes never alter an existing order.
type LineItem struct {
	itemID    int64
	name      string
	quantity  int
	unitPrice decimal.Decimal
}

// NewLineItem validates and returns a line item snapshot.
func NewLineItem(itemID int64, name string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	var problems []error
	if itemID <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("item id", fmt.Errorf("%d is not positive", itemID)))
	}
	if name == "" {
		problems = append(problems, errs.NewValueIsRequiredError("item name"))
	}
	if quantity <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPrice.IsNegative() {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", unitPrice)))
	}
	if err := errors.Join(problems...); err != nil {
		return LineItem{}, err
	}

	return LineItem{itemID: itemID, name: name, quantity: quantity, unitPrice: unitPrice}, nil
}

func (li LineItem) ItemID() int64 {
	return li.itemID
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// Subtotal is unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}
