package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler places an order: it snapshots name and price of every requested
// item from the menu catalog, computes the total and persists the order as RECEIVED.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	created, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // unknown menu items
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.MenuCatalog
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog ports.MenuCatalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle returns the persisted order with its generated id.
// Unknown item ids yield a ValueIsInvalidError listing them; a failing catalog yields an
// UpstreamUnavailableError.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	menuItems, err := h.catalog.GetItemsByIDs(ctx, cmd.ItemIDs())
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamUnavailable) {
			return nil, err
		}
		return nil, errs.NewUpstreamUnavailableError("menu catalog", err)
	}

	lineItems, err := snapshotItems(cmd.Items(), menuItems)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(cmd.UserID(), cmd.RestaurantID(), lineItems, cmd.DeliveryAddress(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func snapshotItems(requested []OrderItemRequest, menu []ports.MenuItem) ([]order.LineItem, error) {
	byID := make(map[int64]ports.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	var missing []int64
	lineItems := make([]order.LineItem, 0, len(requested))
	for _, req := range requested {
		menuItem, ok := byID[req.ItemID]
		if !ok {
			missing = append(missing, req.ItemID)
			continue
		}

		li, err := order.NewLineItem(menuItem.ID, menuItem.Name, req.Quantity, menuItem.Price)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, li)
	}

	if len(missing) > 0 {
		slices.Sort(missing)
		ids := make([]string, len(missing))
		for i, id := range missing {
			ids[i] = strconv.FormatInt(id, 10)
		}
		return nil, errs.NewValueIsInvalidErrorWithCause("items",
			fmt.Errorf("menu items not found: %s", strings.Join(ids, ", ")))
	}

	return lineItems, nil
}
