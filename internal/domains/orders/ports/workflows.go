package ports

import (
	"context"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator routes the delivered transition either through a
// durable workflow engine or inline against the service.
type WorkflowOrchestrator interface {
	FulfillDelivery(ctx context.Context, orderID int64) (*domain.Order, error)
}
