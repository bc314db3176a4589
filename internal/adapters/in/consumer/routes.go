package consumer

import (
	"context"
	"fmt"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/events"
)

type (
	PaymentOutcomeHandler interface {
		Handle(ctx context.Context, cmd commands.ApplyPaymentOutcomeCommand) (commands.Outcome, error)
	}

	OrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceOrderStatusCommand) (commands.Outcome, error)
	}

	AssignDriverHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDriverCommand) (commands.Outcome, error)
	}

	TrackLocationHandler interface {
		Handle(ctx context.Context, cmd commands.TrackDriverLocationCommand) (commands.Outcome, error)
	}
)

// OrderSagaRoutes returns the handlers of the order service queue.
func OrderSagaRoutes(payments PaymentOutcomeHandler, statuses OrderStatusHandler) map[string]HandlerFunc {
	return map[string]HandlerFunc{
		events.TypePaymentOutcome: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.PaymentOutcome](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewApplyPaymentOutcomeCommand(e.OrderID, e.Successful())
			if err != nil {
				return "", err
			}
			return payments.Handle(ctx, cmd)
		},
		events.TypeDriverAssigned: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.DriverAssigned](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewApplyDriverAssignedCommand(e.OrderID, e.DriverID)
			if err != nil {
				return "", err
			}
			return statuses.Handle(ctx, cmd)
		},
		events.TypeOrderPickedUp: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.OrderPickedUp](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewApplyOrderPickedUpCommand(e.OrderID)
			if err != nil {
				return "", err
			}
			return statuses.Handle(ctx, cmd)
		},
		events.TypeOrderDelivered: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.OrderDelivered](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewApplyOrderDeliveredCommand(e.OrderID)
			if err != nil {
				return "", err
			}
			return statuses.Handle(ctx, cmd)
		},
	}
}

// DeliveryRoutes returns the handlers of the delivery service queue.
func DeliveryRoutes(assign AssignDriverHandler, track TrackLocationHandler) map[string]HandlerFunc {
	return map[string]HandlerFunc{
		events.TypeOrderReadyForPickup: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.OrderReadyForPickup](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewAssignDriverCommand(e.OrderID, e.RestaurantID)
			if err != nil {
				return "", err
			}
			return assign.Handle(ctx, cmd)
		},
		events.TypeDriverLocationUpdated: func(ctx context.Context, event events.Event) (commands.Outcome, error) {
			e, err := as[events.DriverLocationUpdated](event)
			if err != nil {
				return "", err
			}
			cmd, err := commands.NewTrackDriverLocationCommand(e.DriverID, e.Latitude, e.Longitude, e.Timestamp)
			if err != nil {
				return "", err
			}
			return track.Handle(ctx, cmd)
		},
	}
}

func as[T events.Event](event events.Event) (T, error) {
	e, ok := event.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected event %T for %s", event, zero.Type())
	}
	return e, nil
}
