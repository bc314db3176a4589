package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// DriverDirectory is the delivery service's synchronous view of the driver service.
// Failures are reported as UpstreamUnavailableError.
type DriverDirectory interface {
	// ListAvailable returns the ids of drivers that are available and not reserved.
	ListAvailable(ctx context.Context) ([]int64, error)

	// Claim atomically reserves the driver for orderID. It returns false when the driver is
	// no longer available or already reserved for another order.
	Claim(ctx context.Context, driverID, orderID int64) (bool, error)

	// Release frees a reservation made by Claim.
	Release(ctx context.Context, driverID, orderID int64) error
}

// MenuItem is a restaurant menu entry as returned by the catalog.
type MenuItem struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// MenuCatalog is the order service's synchronous view of the restaurant service.
type MenuCatalog interface {
	// GetItemsByIDs returns the items that exist among ids. Unknown ids are simply absent.
	GetItemsByIDs(ctx context.Context, ids []int64) ([]MenuItem, error)
}
