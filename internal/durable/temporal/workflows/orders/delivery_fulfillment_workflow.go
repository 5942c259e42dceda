package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/durable/temporal/sequences"
)

const (
	// DeliveryFulfillmentWorkflowName is the public identifier for registering the workflow.
	DeliveryFulfillmentWorkflowName = "orders.workflows.DeliveryFulfillment"
	// DeliveryFulfillmentTaskQueue is the queue consumed by the worker processing order workflows.
	DeliveryFulfillmentTaskQueue = "ORDER_DELIVERY"
)

// DeliveryFulfillmentWorkflowInput captures the payload required to fulfill a delivery.
type DeliveryFulfillmentWorkflowInput struct {
	OrderID int64
	TraceID string
}

// DeliveryFulfillmentWorkflow orchestrates the activities that mark an
// order delivered and decrement vendor stock.
func DeliveryFulfillmentWorkflow(ctx workflow.Context, input DeliveryFulfillmentWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("DeliveryFulfillmentWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	order, err := sequences.RunDeliveryFulfillmentSequence(ctx, input.OrderID)
	if err != nil {
		logger.Error("DeliveryFulfillmentWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("DeliveryFulfillmentWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
