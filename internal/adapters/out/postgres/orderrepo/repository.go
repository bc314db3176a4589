package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its line items and assigns the generated id to the aggregate.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return aggregate.AssignIdentity(dto.ID)
}

// Update writes the mutable part of the order: status and updated_at.
// Line items are a snapshot and never change after creation.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	return nil
}

// Get retrieves an order by id.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by id and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, query *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	// Items are loaded separately so the row lock above covers the order row only.
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}
