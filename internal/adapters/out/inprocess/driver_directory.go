// Package inprocess serves the driver directory straight from the driver service's use
// cases when both services run in the same process.
package inprocess

import (
	"context"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
)

type (
	AvailableDriversHandler interface {
		Handle(ctx context.Context, query queries.ListAvailableDriversQuery) ([]queries.AvailableDriverResponse, error)
	}

	ClaimHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimDriverCommand) (bool, error)
	}
)

// DriverDirectory implements ports.DriverDirectory without a network hop.
type DriverDirectory struct {
	available AvailableDriversHandler
	claims    ClaimHandler
}

func NewDriverDirectory(available AvailableDriversHandler, claims ClaimHandler) *DriverDirectory {
	return &DriverDirectory{available: available, claims: claims}
}

func (d *DriverDirectory) ListAvailable(ctx context.Context) ([]int64, error) {
	drivers, err := d.available.Handle(ctx, queries.NewListAvailableDriversQuery())
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(drivers))
	for _, driver := range drivers {
		ids = append(ids, driver.DriverID)
	}
	return ids, nil
}

func (d *DriverDirectory) Claim(ctx context.Context, driverID, orderID int64) (bool, error) {
	cmd, err := commands.NewClaimDriverCommand(driverID, orderID)
	if err != nil {
		return false, err
	}
	return d.claims.Handle(ctx, cmd)
}

func (d *DriverDirectory) Release(ctx context.Context, driverID, orderID int64) error {
	cmd, err := commands.NewReleaseDriverCommand(driverID, orderID)
	if err != nil {
		return err
	}
	_, err = d.claims.Handle(ctx, cmd)
	return err
}
