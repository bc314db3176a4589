// Package assignmentrepo persists delivery assignments.
package assignmentrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
)

type AssignmentDTO struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	OrderID     int64      `gorm:"not null;uniqueIndex:uq_delivery_assignments_order_id"`
	DriverID    int64      `gorm:"not null;index"`
	Status      string     `gorm:"type:varchar(32);not null"`
	AssignedAt  time.Time  `gorm:"not null"`
	PickedUpAt  *time.Time `gorm:"type:timestamptz"`
	DeliveredAt *time.Time `gorm:"type:timestamptz"`
}

func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

func activeStatusNames() []string {
	statuses := delivery.ActiveStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.String())
	}
	return names
}

func fromDomain(a *delivery.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          a.ID(),
		OrderID:     a.OrderID(),
		DriverID:    a.DriverID(),
		Status:      a.Status().String(),
		AssignedAt:  a.AssignedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreAssignment(dto.ID, dto.OrderID, dto.DriverID, status,
		dto.AssignedAt.UTC(), utc(dto.PickedUpAt), utc(dto.DeliveredAt))
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
