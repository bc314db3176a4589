package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/order"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderResponse, error)
	}

	ListUserOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListUserOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// OrderHandlers are the use cases behind the order routes.
type OrderHandlers struct {
	Create     CreateOrderHandler
	Get        GetOrderHandler
	ListByUser ListUserOrdersHandler
}

type createOrderRequest struct {
	UserID          int64              `json:"userId"`
	RestaurantID    int64              `json:"restaurantId"`
	Items           []orderItemRequest `json:"items"`
	DeliveryAddress string             `json:"deliveryAddress"`
}

type orderItemRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	UserID          int64               `json:"userId"`
	RestaurantID    int64               `json:"restaurantId"`
	Items           []orderItemResponse `json:"items"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	DeliveryAddress string              `json:"deliveryAddress"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type orderItemResponse struct {
	ItemID    int64           `json:"itemId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// RegisterOrderRoutes exposes the order service.
func (s *Server) RegisterOrderRoutes(h OrderHandlers) {
	s.api.POST("/orders", createOrder(h.Create))
	s.api.GET("/orders/:orderId", getOrder(h.Get))
	s.api.GET("/orders", listUserOrders(h.ListByUser))
}

// createOrder handles POST /api/v1/orders.
func createOrder(handler CreateOrderHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createOrderRequest
		if err := c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		items := make([]commands.OrderItemRequest, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, commands.OrderItemRequest{ItemID: item.ItemID, Quantity: item.Quantity})
		}

		cmd, err := commands.NewCreateOrderCommand(req.UserID, req.RestaurantID, items, req.DeliveryAddress)
		if err != nil {
			return err
		}

		created, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, fromOrder(created))
	}
}

// getOrder handles GET /api/v1/orders/:orderId.
func getOrder(handler GetOrderHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := pathID(c, "orderId")
		if err != nil {
			return err
		}

		query, err := queries.NewGetOrderQuery(orderID)
		if err != nil {
			return err
		}

		o, err := handler.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, fromOrderResponse(o))
	}
}

// listUserOrders handles GET /api/v1/orders?userId=.
func listUserOrders(handler ListUserOrdersHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
		if err != nil {
			return badRequest("userId query parameter must be an integer")
		}

		query, err := queries.NewListUserOrdersQuery(userID)
		if err != nil {
			return err
		}

		orders, err := handler.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}

		response := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			response = append(response, fromOrderResponse(o))
		}
		return c.JSON(http.StatusOK, response)
	}
}

func fromOrder(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemResponse{
			ItemID:    item.ItemID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return orderResponse{
		ID:              o.ID(),
		UserID:          o.UserID(),
		RestaurantID:    o.RestaurantID(),
		Items:           items,
		TotalAmount:     o.TotalAmount(),
		DeliveryAddress: o.DeliveryAddress(),
		Status:          o.Status().String(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}

func fromOrderResponse(o queries.OrderResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse(item))
	}

	return orderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		RestaurantID:    o.RestaurantID,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, badRequest(name + " must be an integer")
	}
	return id, nil
}
