// Package driverrepo persists driver profiles, including the reservation column used by
// the driver claim.
package driverrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
)

type ProfileDTO struct {
	DriverID              int64      `gorm:"primaryKey;autoIncrement:false"`
	VehicleDetails        string     `gorm:"type:varchar(255);not null;default:''"`
	Latitude              *float64   `gorm:"type:double precision"`
	Longitude             *float64   `gorm:"type:double precision"`
	LastLocationAt        *time.Time `gorm:"type:timestamptz"`
	IsAvailable           bool       `gorm:"not null;default:false"`
	AvailabilityUpdatedAt time.Time  `gorm:"not null"`
	CurrentOrderID        *int64     `gorm:"uniqueIndex:uq_driver_profiles_current_order_id"`
	CreatedAt             time.Time  `gorm:"not null"`
	UpdatedAt             time.Time  `gorm:"not null"`
}

func (ProfileDTO) TableName() string {
	return "driver_profiles"
}

func fromDomain(p *driver.Profile) ProfileDTO {
	dto := ProfileDTO{
		DriverID:              p.DriverID(),
		VehicleDetails:        p.VehicleDetails(),
		LastLocationAt:        p.LastLocationAt(),
		IsAvailable:           p.IsAvailable(),
		AvailabilityUpdatedAt: p.AvailabilityUpdatedAt(),
		CurrentOrderID:        p.CurrentOrderID(),
		CreatedAt:             p.CreatedAt(),
		UpdatedAt:             p.UpdatedAt(),
	}

	if loc := p.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}

	return dto
}

func toDomain(dto ProfileDTO) (*driver.Profile, error) {
	var location *kernel.Location
	if dto.Latitude != nil && dto.Longitude != nil {
		loc, err := kernel.NewLocation(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		location = &loc
	}

	var lastLocationAt *time.Time
	if dto.LastLocationAt != nil {
		t := dto.LastLocationAt.UTC()
		lastLocationAt = &t
	}

	return driver.RestoreProfile(dto.DriverID, dto.VehicleDetails, location, lastLocationAt,
		dto.IsAvailable, dto.AvailabilityUpdatedAt.UTC(), dto.CurrentOrderID,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
