package orders_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	ordersports "github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	orderactivities "github.com/aquaflow/aquaflow-api/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/aquaflow/aquaflow-api/internal/durable/temporal/workflows/orders"
)

type stubOrdersService struct {
	ordersports.Service
	attempts int
	err      error
}

func (s *stubOrdersService) ChangeStatus(_ context.Context, input ordertypes.ChangeStatusInput) (*domain.Order, error) {
	s.attempts++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Order{ID: input.OrderID, Status: domain.Status(input.Status)}, nil
}

func workflowEnv(svc *stubOrdersService) *testsuite.TestWorkflowEnvironment {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(
		orderworkflows.DeliveryFulfillmentWorkflow,
		workflow.RegisterOptions{Name: orderworkflows.DeliveryFulfillmentWorkflowName},
	)
	env.RegisterActivityWithOptions(
		orderactivities.NewActivities(svc).FulfillDelivery,
		activity.RegisterOptions{Name: orderactivities.FulfillDeliveryActivityName},
	)
	return env
}

func TestDeliveryFulfillmentWorkflow_Delivers(t *testing.T) {
	svc := &stubOrdersService{}
	env := workflowEnv(svc)

	env.ExecuteWorkflow(orderworkflows.DeliveryFulfillmentWorkflowName,
		orderworkflows.DeliveryFulfillmentWorkflowInput{OrderID: 41})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.Equal(t, int64(41), order.ID)
	require.Equal(t, domain.StatusDelivered, order.Status)
	require.Equal(t, 1, svc.attempts)
}

func TestDeliveryFulfillmentWorkflow_CancelledOrderFailsWithoutRetry(t *testing.T) {
	svc := &stubOrdersService{err: domain.ErrOrderCancelled}
	env := workflowEnv(svc)

	env.ExecuteWorkflow(orderworkflows.DeliveryFulfillmentWorkflowName,
		orderworkflows.DeliveryFulfillmentWorkflowInput{OrderID: 41})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, orderactivities.OrderCancelledErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
	require.Equal(t, 1, svc.attempts)
}

func TestDeliveryFulfillmentWorkflow_UnknownOrderFailsWithoutRetry(t *testing.T) {
	svc := &stubOrdersService{err: ordersports.ErrNotFound}
	env := workflowEnv(svc)

	env.ExecuteWorkflow(orderworkflows.DeliveryFulfillmentWorkflowName,
		orderworkflows.DeliveryFulfillmentWorkflowInput{OrderID: 404})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, orderactivities.OrderNotFoundErrorType, appErr.Type())
	require.Equal(t, 1, svc.attempts)
}
