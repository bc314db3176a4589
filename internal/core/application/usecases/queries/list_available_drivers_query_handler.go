package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListAvailableDriversQueryHandler struct {
	db *gorm.DB
}

func NewListAvailableDriversQueryHandler(db *gorm.DB) ListAvailableDriversQueryHandler {
	return ListAvailableDriversQueryHandler{db: db}
}

// Handle returns the drivers sorted by id.
func (h ListAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query ListAvailableDriversQuery,
) ([]AvailableDriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]AvailableDriverResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			driver_id,
			vehicle_details,
			latitude,
			longitude,
			availability_updated_at
		FROM driver_profiles
		WHERE is_available AND current_order_id IS NULL
		ORDER BY driver_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d AvailableDriverResponse
		err = rows.Scan(
			&d.DriverID,
			&d.VehicleDetails,
			&d.Latitude,
			&d.Longitude,
			&d.AvailabilityUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		d.AvailabilityUpdatedAt = d.AvailabilityUpdatedAt.UTC()
		drivers = append(drivers, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
