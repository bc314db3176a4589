package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListUserOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListUserOrdersQueryHandler(db *gorm.DB) ListUserOrdersQueryHandler {
	return ListUserOrdersQueryHandler{db: db}
}

// Handle returns an empty slice for users without orders.
func (h ListUserOrdersQueryHandler) Handle(ctx context.Context, query ListUserOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
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
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var resp OrderResponse
		err = rows.Scan(
			&resp.ID,
			&resp.UserID,
			&resp.RestaurantID,
			&resp.TotalAmount,
			&resp.DeliveryAddress,
			&resp.Status,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
		ids = append(ids, resp.ID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	items, err := loadOrderItems(ctx, h.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		normalize(&orders[i])
	}

	return orders, nil
}
