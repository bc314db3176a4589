package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"fooddelivery/internal/pkg/errs"
)

// GetOrderQueryHandler reads an order straight from the orders tables.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError for unknown orders.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	var resp OrderResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			restaurant_id,
			total_amount,
			delivery_address,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID()).Row().Scan(
		&resp.ID,
		&resp.UserID,
		&resp.RestaurantID,
		&resp.TotalAmount,
		&resp.DeliveryAddress,
		&resp.Status,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID())
	}
	if err != nil {
		return OrderResponse{}, err
	}

	items, err := loadOrderItems(ctx, h.db, []int64{resp.ID})
	if err != nil {
		return OrderResponse{}, err
	}
	resp.Items = items[resp.ID]
	normalize(&resp)

	return resp, nil
}

// loadOrderItems returns the line items of the given orders keyed by order id.
func loadOrderItems(ctx context.Context, db *gorm.DB, orderIDs []int64) (map[int64][]OrderItemResponse, error) {
	items := make(map[int64][]OrderItemResponse, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			item_id,
			name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, id
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int64
		var item OrderItemResponse
		if err = rows.Scan(&orderID, &item.ItemID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func normalize(resp *OrderResponse) {
	if resp.Items == nil {
		resp.Items = make([]OrderItemResponse, 0)
	}
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.UpdatedAt = resp.UpdatedAt.UTC()
}
