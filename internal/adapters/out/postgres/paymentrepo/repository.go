package paymentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/pkg/errs"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add inserts the transaction. A second transaction for the same order yields an
// AlreadyExistsError from the unique index on order_id.
func (r *GormPaymentRepository) Add(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsError("payment for order", tx.OrderID())
		}
		return err
	}

	return tx.AssignIdentity(dto.ID)
}

func (r *GormPaymentRepository) Update(ctx context.Context, tx *payment.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	dto := fromDomain(tx)
	result := r.db.WithContext(ctx).
		Model(&TransactionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":         dto.Status,
			"failure_reason": dto.FailureReason,
			"updated_at":     dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment transaction", tx.ID())
	}

	return nil
}

// GetForUpdate retrieves a transaction by id and locks its row until the transaction ends.
func (r *GormPaymentRepository) GetForUpdate(ctx context.Context, id int64) (*payment.Transaction, error) {
	var dto TransactionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment transaction", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormPaymentRepository) ExistsForOrder(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&TransactionDTO{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
