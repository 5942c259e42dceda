package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. The delivery
// decrement delegates to the injected stock adjuster, recorded once per
// order so repeats are no-ops.
type Repository struct {
	mu            sync.RWMutex
	orders        map[int64]*domain.Order
	messages      map[int64][]*domain.OrderMessage
	invoices      map[int64]*domain.Invoice
	addresses     map[int64]*domain.DeliveryAddress
	fulfilled     map[int64]bool
	stock         ports.StockAdjuster
	nextOrderID   int64
	nextItemID    int64
	nextMessageID int64
	nextInvoiceID int64
}

// NewRepository builds the adapter. The stock adjuster may be nil when no
// delivery transitions are exercised.
func NewRepository(stock ports.StockAdjuster) *Repository {
	return &Repository{
		orders:    map[int64]*domain.Order{},
		messages:  map[int64][]*domain.OrderMessage{},
		invoices:  map[int64]*domain.Invoice{},
		addresses: map[int64]*domain.DeliveryAddress{},
		fulfilled: map[int64]bool{},
		stock:     stock,
	}
}

// SeedAddress registers the address read model attached to composite
// reads, mirroring the addresses table the relational adapter joins.
func (r *Repository) SeedAddress(addr domain.DeliveryAddress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := addr
	r.addresses[addr.ID] = &clone
}

func (r *Repository) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextOrderID++
		clone.ID = r.nextOrderID
	} else if clone.ID > r.nextOrderID {
		r.nextOrderID = clone.ID
	}
	for i := range clone.Items {
		r.nextItemID++
		clone.Items[i].ID = r.nextItemID
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return r.composite(clone.ID)
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.composite(id)
}

func (r *Repository) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.CustomerID == customerID })
}

func (r *Repository) ListByVendor(_ context.Context, vendorID int64) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.VendorID == vendorID })
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.ChangeStatus(status); err != nil {
		return nil, err
	}
	return r.composite(id)
}

func (r *Repository) MarkDelivered(ctx context.Context, id int64) (*domain.Order, bool, error) {
	r.mu.Lock()
	order, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, false, ports.ErrNotFound
	}
	if err := order.ChangeStatus(domain.StatusDelivered); err != nil {
		r.mu.Unlock()
		return nil, false, err
	}
	first := !r.fulfilled[id]
	if first {
		r.fulfilled[id] = true
	}
	items := append([]domain.OrderItem{}, order.Items...)
	r.mu.Unlock()

	if first && r.stock != nil {
		for _, item := range items {
			if _, err := r.stock.DecrementStock(ctx, item.ItemID, item.Quantity); err != nil {
				return nil, first, err
			}
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	result, err := r.composite(id)
	return result, first, err
}

func (r *Repository) AppendMessage(_ context.Context, msg *domain.OrderMessage) (*domain.OrderMessage, error) {
	if msg == nil {
		return nil, errors.New("message is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[msg.OrderID]; !ok {
		return nil, ports.ErrNotFound
	}
	clone := *msg
	r.nextMessageID++
	clone.ID = r.nextMessageID
	r.messages[clone.OrderID] = append(r.messages[clone.OrderID], &clone)
	result := clone
	return &result, nil
}

func (r *Repository) ListMessages(_ context.Context, orderID int64) ([]*domain.OrderMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	thread := r.messages[orderID]
	list := make([]*domain.OrderMessage, 0, len(thread))
	for _, msg := range thread {
		clone := *msg
		list = append(list, &clone)
	}
	return list, nil
}

func (r *Repository) CreateInvoice(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv == nil {
		return nil, errors.New("invoice is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[inv.OrderID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if order.InvoiceID != nil {
		return nil, domain.ErrInvoiceExists
	}
	clone := *inv
	r.nextInvoiceID++
	clone.ID = r.nextInvoiceID
	r.invoices[clone.ID] = &clone
	invoiceID := clone.ID
	order.InvoiceID = &invoiceID
	result := clone
	return &result, nil
}

func (r *Repository) GetInvoice(_ context.Context, id int64) (*domain.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.invoices[id]
	if !ok {
		return nil, ports.ErrInvoiceNotFound
	}
	clone := *inv
	return &clone, nil
}

// composite assembles the denormalized order read. Callers hold the lock.
func (r *Repository) composite(id int64) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := cloneOrder(order)
	thread := r.messages[id]
	clone.Messages = make([]domain.OrderMessage, 0, len(thread))
	for _, msg := range thread {
		clone.Messages = append(clone.Messages, *msg)
	}
	if addr, ok := r.addresses[order.AddressID]; ok {
		addrClone := *addr
		clone.Address = &addrClone
	}
	return clone, nil
}

func (r *Repository) list(match func(*domain.Order) bool) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Order, 0)
	for id, order := range r.orders {
		if match(order) {
			composite, err := r.composite(id)
			if err != nil {
				return nil, err
			}
			result = append(result, composite)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OrderedAt.Equal(result[j].OrderedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].OrderedAt.After(result[j].OrderedAt)
	})
	return result, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem{}, order.Items...)
	clone.Messages = nil
	clone.Address = nil
	if order.InvoiceID != nil {
		invoiceID := *order.InvoiceID
		clone.InvoiceID = &invoiceID
	}
	return &clone
}
