// Package paymentrepo persists payment transactions.
package paymentrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"fooddelivery/internal/core/domain/model/payment"
)

type TransactionDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	OrderID       int64           `gorm:"not null;uniqueIndex:uq_payment_transactions_order_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:char(3);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	Provider      string          `gorm:"type:varchar(32);not null"`
	ProviderRef   string          `gorm:"column:provider_ref;type:varchar(64);not null;uniqueIndex:uq_payment_transactions_provider_ref"`
	FailureReason *string         `gorm:"type:text"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (TransactionDTO) TableName() string {
	return "payment_transactions"
}

func fromDomain(tx *payment.Transaction) TransactionDTO {
	var failureReason *string
	if reason := tx.FailureReason(); reason != "" {
		failureReason = &reason
	}

	return TransactionDTO{
		ID:            tx.ID(),
		OrderID:       tx.OrderID(),
		Amount:        tx.Amount(),
		Currency:      tx.Currency(),
		Status:        tx.Status().String(),
		Provider:      tx.Provider(),
		ProviderRef:   tx.ProviderReference(),
		FailureReason: failureReason,
		CreatedAt:     tx.CreatedAt(),
		UpdatedAt:     tx.UpdatedAt(),
	}
}

func toDomain(dto TransactionDTO) (*payment.Transaction, error) {
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var failureReason string
	if dto.FailureReason != nil {
		failureReason = *dto.FailureReason
	}

	return payment.RestoreTransaction(dto.ID, dto.OrderID, dto.Amount, dto.Currency, status,
		dto.Provider, dto.ProviderRef, failureReason, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
