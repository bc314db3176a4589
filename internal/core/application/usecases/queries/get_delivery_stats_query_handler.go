package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

type GetDeliveryStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryStatsQueryHandler(db *gorm.DB) GetDeliveryStatsQueryHandler {
	return GetDeliveryStatsQueryHandler{db: db}
}

func (h GetDeliveryStatsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryStatsQuery,
) (DeliveryStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryStatsResponse{}, err
	}

	active := make([]string, 0, len(delivery.ActiveStatuses()))
	for _, status := range delivery.ActiveStatuses() {
		active = append(active, status.String())
	}

	var stats DeliveryStatsResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM driver_profiles WHERE is_available AND current_order_id IS NULL),
			(SELECT COUNT(*) FROM delivery_assignments WHERE status IN ?)
	`, active).Row().Scan(&stats.AvailableDrivers, &stats.ActiveDeliveries)
	if err != nil {
		return DeliveryStatsResponse{}, err
	}

	return stats, nil
}
