package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/payment"
)

type (
	InitiatePaymentHandler interface {
		Handle(ctx context.Context, cmd commands.InitiatePaymentCommand) (*payment.Transaction, error)
	}

	ConfirmPaymentHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) (*payment.Transaction, error)
	}
)

// PaymentHandlers are the use cases behind the payment routes.
type PaymentHandlers struct {
	Initiate InitiatePaymentHandler
	Confirm  ConfirmPaymentHandler
}

type initiatePaymentRequest struct {
	OrderID  int64           `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type paymentResponse struct {
	TransactionID     int64           `json:"transactionId"`
	OrderID           int64           `json:"orderId"`
	Status            string          `json:"status"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	Message           string          `json:"message"`
	PaymentGatewayURL string          `json:"paymentGatewayUrl,omitempty"`
}

// RegisterPaymentRoutes exposes the payment service.
func (s *Server) RegisterPaymentRoutes(h PaymentHandlers) {
	s.api.POST("/payments", initiatePayment(h.Initiate))
	s.api.PUT("/payments/confirm/:transactionId", s.confirmPayment(h.Confirm))
}

// initiatePayment handles POST /api/v1/payments.
func initiatePayment(handler InitiatePaymentHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req initiatePaymentRequest
		if err := c.Bind(&req); err != nil {
			return badRequest("Invalid request body")
		}

		cmd, err := commands.NewInitiatePaymentCommand(req.OrderID, req.Amount, req.Currency)
		if err != nil {
			return err
		}

		tx, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return err
		}

		response := fromTransaction(tx)
		response.Message = fmt.Sprintf(
			"Payment initiated. Use PUT %s/payments/confirm/%d?success=true (or false) to simulate completion.",
			apiPrefix, tx.ID())
		response.PaymentGatewayURL = tx.RedirectURL()
		return c.JSON(http.StatusOK, response)
	}
}

// confirmPayment handles PUT /api/v1/payments/confirm/:transactionId?success=.
// success defaults to true.
func (s *Server) confirmPayment(handler ConfirmPaymentHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		transactionID, err := pathID(c, "transactionId")
		if err != nil {
			return err
		}

		succeeded := true
		if raw := c.QueryParam("success"); raw != "" {
			if succeeded, err = strconv.ParseBool(raw); err != nil {
				return badRequest("success query parameter must be a boolean")
			}
		}

		cmd, err := commands.NewConfirmPaymentCommand(transactionID, succeeded)
		if err != nil {
			return err
		}

		tx, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil && tx == nil {
			return err
		}
		s.warnCommitted(c, err)

		response := fromTransaction(tx)
		response.Message = fmt.Sprintf("Payment status updated to %s for transaction %d.", tx.Status(), tx.ID())
		return c.JSON(http.StatusOK, response)
	}
}

// warnCommitted logs a failure that happened after the state change was committed. The
// request itself succeeded, so it is still answered with the new state.
func (s *Server) warnCommitted(c echo.Context, err error) {
	if err != nil {
		s.logger.WarnContext(c.Request().Context(), "Side effect after commit failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}
}

func fromTransaction(tx *payment.Transaction) paymentResponse {
	return paymentResponse{
		TransactionID: tx.ID(),
		OrderID:       tx.OrderID(),
		Status:        tx.Status().String(),
		Amount:        tx.Amount(),
		Currency:      tx.Currency(),
	}
}
