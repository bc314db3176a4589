package assignmentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/pkg/errs"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add inserts the assignment. A second assignment for the same order yields an
// AlreadyExistsError from the unique index on order_id.
func (r *GormAssignmentRepository) Add(ctx context.Context, a *delivery.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("assignment for order", a.OrderID())
		}
		return err
	}

	return a.AssignIdentity(dto.ID)
}

func (r *GormAssignmentRepository) Update(ctx context.Context, a *delivery.Assignment) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":       dto.Status,
			"picked_up_at": dto.PickedUpAt,
			"delivered_at": dto.DeliveredAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", a.ID())
	}

	return nil
}

// GetForUpdate retrieves an assignment by id and locks its row until the transaction ends.
func (r *GormAssignmentRepository) GetForUpdate(ctx context.Context, id int64) (*delivery.Assignment, error) {
	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAssignmentRepository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// FindActiveByDriver returns the driver's ASSIGNED or PICKED_UP assignment, or an
// ObjectNotFoundError when the driver has none.
func (r *GormAssignmentRepository) FindActiveByDriver(ctx context.Context, driverID int64) (*delivery.Assignment, error) {
	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN ?", driverID, activeStatusNames()).
		Order("assigned_at DESC, id DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active assignment of driver", driverID)
		}
		return nil, err
	}

	return toDomain(dto)
}

