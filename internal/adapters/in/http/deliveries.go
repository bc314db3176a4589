package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/delivery"
)

type (
	UpdateDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) (commands.UpdateDeliveryStatusResult, error)
	}

	TrackedLocationHandler interface {
		Handle(ctx context.Context, query queries.GetTrackedLocationQuery) (queries.TrackedLocationResponse, bool, error)
	}
)

// DeliveryHandlers are the use cases behind the delivery routes.
type DeliveryHandlers struct {
	UpdateStatus    UpdateDeliveryStatusHandler
	TrackedLocation TrackedLocationHandler
}

type updateDeliveryStatusRequest struct {
	Status string `json:"status"`
}

type assignmentResponse struct {
	ID          int64      `json:"id"`
	OrderID     int64      `json:"orderId"`
	DriverID    int64      `json:"driverId"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assignedAt"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	Changed     bool       `json:"changed"`
}

type trackedLocationResponse struct {
	OrderID   int64     `json:"orderId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// RegisterDeliveryRoutes exposes the delivery service.
func (s *Server) RegisterDeliveryRoutes(h DeliveryHandlers) {
	s.api.PUT("/deliveries/:assignmentId/status", s.updateDeliveryStatus(h.UpdateStatus))
	s.api.GET("/deliveries/orders/:orderId/location", getTrackedLocation(h.TrackedLocation))
	s.api.GET("/deliveries/orders/:orderId/location/stream", s.streamTrackedLocation(h.TrackedLocation))
}

// updateDeliveryStatus handles PUT /api/v1/deliveries/:assignmentId/status.
// A request that matches no transition is answered 200 with changed=false.
func (s *Server) updateDeliveryStatus(handler UpdateDeliveryStatusHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		assignmentID, err := pathID(c, "assignmentId")
		if err != nil {
			return err
		}

		var req updateDeliveryStatusRequest
		if err = c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		status, err := delivery.ParseStatus(req.Status)
		if err != nil {
			return err
		}

		cmd, err := commands.NewUpdateDeliveryStatusCommand(assignmentID, status)
		if err != nil {
			return err
		}

		result, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil && !result.Changed {
			return err
		}
		s.warnCommitted(c, err)

		return c.JSON(http.StatusOK, fromAssignment(result))
	}
}

// getTrackedLocation handles GET /api/v1/deliveries/orders/:orderId/location.
// An order that is not being tracked is answered 404.
func getTrackedLocation(handler TrackedLocationHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := pathID(c, "orderId")
		if err != nil {
			return err
		}

		query, err := queries.NewGetTrackedLocationQuery(orderID)
		if err != nil {
			return err
		}

		location, found, err := handler.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		if !found {
			return echo.NewHTTPError(http.StatusNotFound, "Order is not being tracked")
		}

		return c.JSON(http.StatusOK, trackedLocationResponse(location))
	}
}

func fromAssignment(result commands.UpdateDeliveryStatusResult) assignmentResponse {
	a := result.Assignment
	return assignmentResponse{
		ID:          a.ID(),
		OrderID:     a.OrderID(),
		DriverID:    a.DriverID(),
		Status:      a.Status().String(),
		AssignedAt:  a.AssignedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
		Changed:     result.Changed,
	}
}
