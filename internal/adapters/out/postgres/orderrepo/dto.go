// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// It implements the repository pattern for the order aggregate, handling the conversion
// between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/core/domain/model/order"
)

// OrderDTO is the database row of an order. Line items live in order_items.
type OrderDTO struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	UserID          int64           `gorm:"not null;index"`
	RestaurantID    int64           `gorm:"not null"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	Status          string          `gorm:"type:varchar(32);not null;index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
	Items           []LineItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO stores the name and price snapshot taken when the order was placed.
type LineItemDTO struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"not null;index"`
	ItemID    int64           `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]LineItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, LineItemDTO{
			OrderID:   aggregate.ID(),
			ItemID:    item.ItemID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		UserID:          aggregate.UserID(),
		RestaurantID:    aggregate.RestaurantID(),
		TotalAmount:     aggregate.TotalAmount(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Status:          aggregate.Status().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewLineItem(itemDTO.ItemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(dto.ID, dto.UserID, dto.RestaurantID, items, dto.TotalAmount,
		dto.DeliveryAddress, status, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
