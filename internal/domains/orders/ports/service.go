package ports

import (
	"context"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
)

// Service exposes the order lifecycle use cases to transport adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error)
	ChangeStatus(ctx context.Context, input types.ChangeStatusInput) (*domain.Order, error)
	SendMessage(ctx context.Context, input types.SendMessageInput) (*domain.OrderMessage, error)
	ListMessages(ctx context.Context, orderID int64) ([]*domain.OrderMessage, error)
	GenerateInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error)
}
