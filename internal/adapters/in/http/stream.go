package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"fooddelivery/internal/core/application/usecases/queries"
)

// DefaultStreamInterval is how often the tracking stream polls the location cache.
const DefaultStreamInterval = 5 * time.Second

const streamWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

type trackingMessage struct {
	OrderID   int64      `json:"orderId"`
	Tracked   bool       `json:"tracked"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// streamTrackedLocation handles GET /api/v1/deliveries/orders/:orderId/location/stream.
// After the upgrade it pushes the cached position on every poll until the client goes away.
// A poll that finds nothing sends tracked=false.
func (s *Server) streamTrackedLocation(handler TrackedLocationHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := pathID(c, "orderId")
		if err != nil {
			return err
		}

		query, err := queries.NewGetTrackedLocationQuery(orderID)
		if err != nil {
			return err
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// The upgrader already answered the request.
			s.logger.WarnContext(c.Request().Context(), "Websocket upgrade failed", "error", err)
			return nil
		}
		defer func() {
			_ = conn.Close()
		}()

		// Reads detect the client closing the connection.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, readErr := conn.NextReader(); readErr != nil {
					return
				}
			}
		}()

		ctx := c.Request().Context()
		ticker := time.NewTicker(s.streamInterval)
		defer ticker.Stop()

		for {
			location, found, handleErr := handler.Handle(ctx, query)
			if handleErr != nil {
				s.logger.WarnContext(ctx, "Tracking stream poll failed", "order_id", orderID, "error", handleErr)
			} else {
				msg := trackingMessage{OrderID: orderID, Tracked: found}
				if found {
					msg.Latitude = &location.Latitude
					msg.Longitude = &location.Longitude
					msg.Timestamp = &location.Timestamp
				}
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				if writeErr := conn.WriteJSON(msg); writeErr != nil {
					return nil
				}
			}

			select {
			case <-closed:
				return nil
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	}
}
