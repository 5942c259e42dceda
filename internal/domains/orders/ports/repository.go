package ports

import (
	"context"
	"errors"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrInvoiceNotFound = errors.New("invoice not found")
)

// Repository persists orders, their lines, messages, and invoices.
// Composite reads return orders with items, messages, and address
// attached; a failed sub-read degrades that field to its zero value.
type Repository interface {
	// Create persists the order and its N lines as one unit.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error)

	UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error)

	// MarkDelivered sets the delivered status and, exactly once per order,
	// decrements vendor stock for every line. The boolean reports whether
	// this call performed the decrement.
	MarkDelivered(ctx context.Context, id int64) (*domain.Order, bool, error)

	AppendMessage(ctx context.Context, msg *domain.OrderMessage) (*domain.OrderMessage, error)
	ListMessages(ctx context.Context, orderID int64) ([]*domain.OrderMessage, error)

	// CreateInvoice persists the invoice and links it to the order in the
	// same unit of work.
	CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)
}

// StockAdjuster decrements vendor stock when an order is fulfilled. The
// catalog service satisfies it; the postgres orders adapter instead folds
// the decrement into its delivery transaction.
type StockAdjuster interface {
	DecrementStock(ctx context.Context, itemID int64, quantity int32) (int32, error)
}
