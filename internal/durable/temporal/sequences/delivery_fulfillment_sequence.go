package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	orderactivities "github.com/aquaflow/aquaflow-api/internal/durable/temporal/activities/orders"
)

// RunDeliveryFulfillmentSequence executes the ordered set of activities
// needed to mark an order delivered and settle vendor stock.
func RunDeliveryFulfillmentSequence(ctx workflow.Context, orderID int64) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("delivery fulfillment sequence started", "orderId", orderID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.OrderCancelledErrorType,
				orderactivities.OrderNotFoundErrorType,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var order domain.Order
	err := workflow.ExecuteActivity(ctx, orderactivities.FulfillDeliveryActivityName, orderID).Get(ctx, &order)
	if err != nil {
		logger.Error("delivery fulfillment sequence failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("delivery fulfillment sequence completed", "orderId", order.ID)
	return &order, nil
}
