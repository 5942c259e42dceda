package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	orderports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

const (
	// OrderCancelledErrorType labels the application error raised when the
	// order is frozen; the retry policy keys on it.
	OrderCancelledErrorType = "ErrOrderCancelled"
	// OrderNotFoundErrorType labels the application error raised when the
	// order does not exist.
	OrderNotFoundErrorType = "ErrNotFound"
)

const (
	// FulfillDeliveryActivityName marks an order delivered and applies the
	// stock decrement.
	FulfillDeliveryActivityName = "orders.activities.FulfillDelivery"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// FulfillDelivery moves the order to delivered. The repository's
// fulfillment marker keeps the stock decrement single-shot, so activity
// retries are safe.
func (a *Activities) FulfillDelivery(ctx context.Context, orderID int64) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("delivery fulfillment activity not initialized", "orderId", orderID)
		return nil, errors.New("delivery fulfillment activity not initialized")
	}
	logger.Info("FulfillDelivery activity started", "orderId", orderID)
	order, err := a.service.ChangeStatus(ctx, ordertypes.ChangeStatusInput{
		OrderID: orderID,
		Status:  string(domain.StatusDelivered),
	})
	if err != nil {
		logger.Error("FulfillDelivery activity failed", "orderId", orderID, "error", err)
		// Cancelled and missing orders never recover on retry; raise typed
		// application errors so the retry policy stops immediately.
		switch {
		case errors.Is(err, domain.ErrOrderCancelled):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), OrderCancelledErrorType, err)
		case errors.Is(err, orderports.ErrNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), OrderNotFoundErrorType, err)
		}
		return nil, err
	}
	logger.Info("FulfillDelivery activity completed", "orderId", orderID, "status", string(order.Status))
	return order, nil
}
