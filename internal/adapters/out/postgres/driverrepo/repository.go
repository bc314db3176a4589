package driverrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/pkg/errs"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add inserts a new profile. Driver ids come from the user account, so a second insert
// for the same id yields an AlreadyExistsError.
func (r *GormDriverRepository) Add(ctx context.Context, p *driver.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("driver", p.DriverID())
		}
		return err
	}

	return nil
}

// Update writes every column of the profile. Reserving an order that another driver
// already holds violates the unique current_order_id index and yields an AlreadyExistsError.
func (r *GormDriverRepository) Update(ctx context.Context, p *driver.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&ProfileDTO{}).
		Where("driver_id = ?", dto.DriverID).
		Select("*").
		Omit("driver_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) && dto.CurrentOrderID != nil {
			return errs.NewAlreadyExistsError("driver reservation for order", *dto.CurrentOrderID)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("driver", p.DriverID())
	}

	return nil
}

func (r *GormDriverRepository) Get(ctx context.Context, driverID int64) (*driver.Profile, error) {
	return r.get(r.db.WithContext(ctx), driverID)
}

// GetForUpdate retrieves a profile and locks its row until the transaction ends.
func (r *GormDriverRepository) GetForUpdate(ctx context.Context, driverID int64) (*driver.Profile, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), driverID)
}

func (r *GormDriverRepository) get(query *gorm.DB, driverID int64) (*driver.Profile, error) {
	var dto ProfileDTO
	if err := query.First(&dto, "driver_id = ?", driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", driverID)
		}
		return nil, err
	}

	return toDomain(dto)
}

