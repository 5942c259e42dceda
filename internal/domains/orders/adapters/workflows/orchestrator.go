package workflows

import (
	"context"
	"errors"
	"fmt"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	orderactivities "github.com/aquaflow/aquaflow-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/aquaflow/aquaflow-api/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalDeliveryWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineDeliveryWorkflows)(nil)
)

// TemporalDeliveryWorkflows starts delivery fulfillment on a Temporal cluster.
type TemporalDeliveryWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalDeliveryWorkflows wires a Temporal client into the orchestrator.
func NewTemporalDeliveryWorkflows(c client.Client) *TemporalDeliveryWorkflows {
	return &TemporalDeliveryWorkflows{client: c, taskQueue: orderworkflows.DeliveryFulfillmentTaskQueue}
}

// FulfillDelivery starts the workflow that marks the order delivered. The
// workflow ID is derived from the order, so a repeated transition joins
// the running execution instead of starting a second one.
func (o *TemporalDeliveryWorkflows) FulfillDelivery(ctx context.Context, orderID int64) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal delivery workflows not configured")
	}
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-delivery-%d", orderID),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.DeliveryFulfillmentWorkflow,
		orderworkflows.DeliveryFulfillmentWorkflowInput{OrderID: orderID, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			var order domain.Order
			if err := existingRun.Get(ctx, &order); err != nil {
				return nil, unwrapWorkflowError(err)
			}
			return &order, nil
		}
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, unwrapWorkflowError(err)
	}
	return &order, nil
}

// unwrapWorkflowError converts typed application errors crossing the
// workflow boundary back into the sentinels callers match on.
func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.OrderCancelledErrorType:
		return domain.ErrOrderCancelled
	case orderactivities.OrderNotFoundErrorType:
		return ports.ErrNotFound
	}
	return err
}

// InlineDeliveryWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineDeliveryWorkflows struct {
	service ports.Service
}

// NewInlineDeliveryWorkflows wraps the orders service for synchronous execution.
func NewInlineDeliveryWorkflows(service ports.Service) *InlineDeliveryWorkflows {
	return &InlineDeliveryWorkflows{service: service}
}

// FulfillDelivery delegates to the application service without durable orchestration.
func (o *InlineDeliveryWorkflows) FulfillDelivery(ctx context.Context, orderID int64) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline delivery workflows not configured")
	}
	return o.service.ChangeStatus(ctx, ordertypes.ChangeStatusInput{
		OrderID: orderID,
		Status:  string(domain.StatusDelivered),
	})
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
