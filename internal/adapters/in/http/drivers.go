package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/driver"
)

type (
	RegisterDriverHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterDriverCommand) (*driver.Profile, bool, error)
	}

	ListAvailableDriversHandler interface {
		Handle(ctx context.Context, query queries.ListAvailableDriversQuery) ([]queries.AvailableDriverResponse, error)
	}

	SetDriverAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetDriverAvailabilityCommand) (*driver.Profile, error)
	}

	UpdateDriverLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDriverLocationCommand) (*driver.Profile, error)
	}

	ClaimDriverHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimDriverCommand) (bool, error)
	}
)

// DriverHandlers are the use cases behind the driver routes.
type DriverHandlers struct {
	Register        RegisterDriverHandler
	ListAvailable   ListAvailableDriversHandler
	SetAvailability SetDriverAvailabilityHandler
	UpdateLocation  UpdateDriverLocationHandler
	Claim           ClaimDriverHandler
}

type registerDriverRequest struct {
	VehicleDetails string `json:"vehicleDetails"`
}

type availabilityRequest struct {
	Available *bool `json:"available"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type reservationRequest struct {
	OrderID int64 `json:"orderId"`
}

type claimResponse struct {
	Claimed bool `json:"claimed"`
}

type driverResponse struct {
	DriverID              int64      `json:"driverId"`
	VehicleDetails        string     `json:"vehicleDetails"`
	Latitude              *float64   `json:"latitude,omitempty"`
	Longitude             *float64   `json:"longitude,omitempty"`
	LastLocationAt        *time.Time `json:"lastLocationAt,omitempty"`
	Available             bool       `json:"available"`
	AvailabilityUpdatedAt time.Time  `json:"availabilityUpdatedAt"`
	CurrentOrderID        *int64     `json:"currentOrderId,omitempty"`
}

// RegisterDriverRoutes exposes the driver service.
func (s *Server) RegisterDriverRoutes(h DriverHandlers) {
	s.api.POST("/drivers/:driverId", registerDriver(h.Register))
	s.api.GET("/drivers", listAvailableDrivers(h.ListAvailable))
	s.api.PUT("/drivers/:driverId/availability", setDriverAvailability(h.SetAvailability))
	s.api.PUT("/drivers/:driverId/location", s.updateDriverLocation(h.UpdateLocation))
	s.api.POST("/drivers/:driverId/claim", claimDriver(h.Claim, false))
	s.api.POST("/drivers/:driverId/release", claimDriver(h.Claim, true))
}

// registerDriver handles POST /api/v1/drivers/:driverId. It answers 201 for a new profile
// and 200 with the stored profile when the driver is already registered.
func registerDriver(handler RegisterDriverHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		driverID, err := pathID(c, "driverId")
		if err != nil {
			return err
		}

		var req registerDriverRequest
		if err = c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		cmd, err := commands.NewRegisterDriverCommand(driverID, req.VehicleDetails)
		if err != nil {
			return err
		}

		profile, created, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return c.JSON(status, fromProfile(profile))
	}
}

// listAvailableDrivers handles GET /api/v1/drivers?available=true.
func listAvailableDrivers(handler ListAvailableDriversHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.QueryParam("available") != "true" {
			return badRequest("only available=true is supported")
		}

		drivers, err := handler.Handle(c.Request().Context(), queries.NewListAvailableDriversQuery())
		if err != nil {
			return err
		}

		response := make([]driverResponse, 0, len(drivers))
		for _, d := range drivers {
			response = append(response, driverResponse{
				DriverID:              d.DriverID,
				VehicleDetails:        d.VehicleDetails,
				Latitude:              d.Latitude,
				Longitude:             d.Longitude,
				Available:             true,
				AvailabilityUpdatedAt: d.AvailabilityUpdatedAt,
			})
		}
		return c.JSON(http.StatusOK, response)
	}
}

// setDriverAvailability handles PUT /api/v1/drivers/:driverId/availability.
func setDriverAvailability(handler SetDriverAvailabilityHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		driverID, err := pathID(c, "driverId")
		if err != nil {
			return err
		}

		var req availabilityRequest
		if err = c.Bind(&req); err != nil || req.Available == nil {
			return badRequest("available is required")
		}

		cmd, err := commands.NewSetDriverAvailabilityCommand(driverID, *req.Available)
		if err != nil {
			return err
		}

		profile, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, fromProfile(profile))
	}
}

// updateDriverLocation handles PUT /api/v1/drivers/:driverId/location.
func (s *Server) updateDriverLocation(handler UpdateDriverLocationHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		driverID, err := pathID(c, "driverId")
		if err != nil {
			return err
		}

		var req locationRequest
		if err = c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		cmd, err := commands.NewUpdateDriverLocationCommand(driverID, req.Latitude, req.Longitude)
		if err != nil {
			return err
		}

		profile, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil && profile == nil {
			return err
		}
		s.warnCommitted(c, err)

		return c.JSON(http.StatusOK, fromProfile(profile))
	}
}

// claimDriver handles POST /api/v1/drivers/:driverId/claim and .../release.
func claimDriver(handler ClaimDriverHandler, release bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		driverID, err := pathID(c, "driverId")
		if err != nil {
			return err
		}

		var req reservationRequest
		if err = c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		var cmd commands.ClaimDriverCommand
		if release {
			cmd, err = commands.NewReleaseDriverCommand(driverID, req.OrderID)
		} else {
			cmd, err = commands.NewClaimDriverCommand(driverID, req.OrderID)
		}
		if err != nil {
			return err
		}

		claimed, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}

		if release {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusOK, claimResponse{Claimed: claimed})
	}
}

func fromProfile(p *driver.Profile) driverResponse {
	response := driverResponse{
		DriverID:              p.DriverID(),
		VehicleDetails:        p.VehicleDetails(),
		LastLocationAt:        p.LastLocationAt(),
		Available:             p.IsAvailable(),
		AvailabilityUpdatedAt: p.AvailabilityUpdatedAt(),
		CurrentOrderID:        p.CurrentOrderID(),
	}
	if loc := p.Location(); loc != nil {
		latitude, longitude := loc.Latitude(), loc.Longitude()
		response.Latitude = &latitude
		response.Longitude = &longitude
	}
	return response
}
