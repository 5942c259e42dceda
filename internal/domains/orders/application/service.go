package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

// defaultInvoiceDue is the settlement window stamped on generated invoices.
const defaultInvoiceDue = 7 * 24 * time.Hour

// Service orchestrates the order lifecycle use cases.
type Service struct {
	repo       ports.Repository
	directory  ports.CustomerDirectory
	catalog    ports.VendorCatalog
	now        func() time.Time
	invoiceDue time.Duration
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInvoiceDue overrides the settlement window stamped on invoices.
func WithInvoiceDue(due time.Duration) Option {
	return func(s *Service) {
		if due > 0 {
			s.invoiceDue = due
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, directory ports.CustomerDirectory, catalog ports.VendorCatalog, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		directory:  directory,
		catalog:    catalog,
		now:        time.Now,
		invoiceDue: defaultInvoiceDue,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder resolves the vendor from the area, snapshots customer and
// item data, and persists the order with its lines as one unit.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	customer, err := s.directory.LookupCustomer(ctx, input.CustomerID)
	if err != nil {
		return nil, mapError(err)
	}
	area, err := s.catalog.LookupArea(ctx, input.AreaID)
	if err != nil {
		return nil, mapError(err)
	}
	lines := make([]domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		item, err := s.catalog.LookupItem(ctx, line.ItemID)
		if err != nil {
			return nil, mapError(err)
		}
		lines = append(lines, domain.OrderItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: line.Quantity,
			Price:    item.Price,
		})
	}
	order, err := domain.NewOrder(customer.ID, area.VendorID, input.AreaID, input.AddressID, lines)
	if err != nil {
		return nil, mapError(err)
	}
	order.CustomerName = customer.Name
	order.CustomerPhone = customer.Phone
	order.VendorName = area.VendorName
	order.PreferredTime = strings.TrimSpace(input.PreferredTime)
	order.OrderedAt = s.now()
	order.DeliveryDate = input.DeliveryDate
	if order.DeliveryDate.IsZero() {
		order.DeliveryDate = order.OrderedAt.AddDate(0, 0, 1)
	}
	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads one order with items, messages, and address attached.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ListByVendor returns the vendor's orders, newest first.
func (s *Service) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error) {
	orders, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, mapError(err)
	}
	return orders, nil
}

// ChangeStatus moves the order to the requested state. The delivered
// transition runs the fulfillment path, which decrements vendor stock at
// most once per order regardless of how often it is repeated.
func (s *Service) ChangeStatus(ctx context.Context, input types.ChangeStatusInput) (*domain.Order, error) {
	status := domain.Status(input.Status)
	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.ChangeStatus(status); err != nil {
		return nil, mapError(err)
	}
	if status == domain.StatusDelivered {
		updated, _, err := s.repo.MarkDelivered(ctx, input.OrderID)
		if err != nil {
			return nil, mapError(err)
		}
		return updated, nil
	}
	updated, err := s.repo.UpdateStatus(ctx, input.OrderID, status)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// SendMessage appends one entry to the order thread.
func (s *Service) SendMessage(ctx context.Context, input types.SendMessageInput) (*domain.OrderMessage, error) {
	if _, err := s.repo.GetByID(ctx, input.OrderID); err != nil {
		return nil, mapError(err)
	}
	msg, err := domain.NewOrderMessage(input.OrderID, domain.Sender(input.Sender), input.SenderName, strings.TrimSpace(input.Body))
	if err != nil {
		return nil, mapError(err)
	}
	msg.SentAt = s.now()
	saved, err := s.repo.AppendMessage(ctx, msg)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListMessages returns the order thread, oldest first.
func (s *Service) ListMessages(ctx context.Context, orderID int64) ([]*domain.OrderMessage, error) {
	msgs, err := s.repo.ListMessages(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	return msgs, nil
}

// GenerateInvoice persists a draft invoice for the order total and links
// it to the order. Allowed once, and never for cancelled orders.
func (s *Service) GenerateInvoice(ctx context.Context, orderID int64) (*domain.Invoice, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if err := order.CanInvoice(); err != nil {
		return nil, mapError(err)
	}
	issued := s.now()
	invoice := &domain.Invoice{
		Code:     invoiceCode(),
		OrderID:  order.ID,
		Amount:   order.Total,
		IssuedAt: issued,
		DueAt:    issued.Add(s.invoiceDue),
		Status:   domain.InvoiceDraft,
	}
	saved, err := s.repo.CreateInvoice(ctx, invoice)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func invoiceCode() string {
	id := uuid.New().String()
	return "INV-" + strings.ToUpper(id[:8])
}

var _ ports.Service = (*Service)(nil)
