package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// DriverDirectory implements ports.DriverDirectory against the driver service API.
type DriverDirectory struct {
	client client
}

func NewDriverDirectory(baseURL string, timeout time.Duration) *DriverDirectory {
	return &DriverDirectory{client: newClient("driver service", baseURL, timeout)}
}

type availableDriver struct {
	DriverID int64 `json:"driverId"`
}

type reservation struct {
	OrderID int64 `json:"orderId"`
}

type claimResult struct {
	Claimed bool `json:"claimed"`
}

func (d *DriverDirectory) ListAvailable(ctx context.Context) ([]int64, error) {
	var drivers []availableDriver
	if err := d.client.do(ctx, http.MethodGet, "/api/v1/drivers?available=true", nil, &drivers); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(drivers))
	for _, driver := range drivers {
		ids = append(ids, driver.DriverID)
	}
	return ids, nil
}

func (d *DriverDirectory) Claim(ctx context.Context, driverID, orderID int64) (bool, error) {
	var result claimResult
	path := fmt.Sprintf("/api/v1/drivers/%d/claim", driverID)
	if err := d.client.do(ctx, http.MethodPost, path, reservation{OrderID: orderID}, &result); err != nil {
		return false, err
	}
	return result.Claimed, nil
}

func (d *DriverDirectory) Release(ctx context.Context, driverID, orderID int64) error {
	path := fmt.Sprintf("/api/v1/drivers/%d/release", driverID)
	return d.client.do(ctx, http.MethodPost, path, reservation{OrderID: orderID}, nil)
}
