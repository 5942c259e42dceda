package domain

import (
	"errors"
	"time"
)

// Status enumerates order progression. No strict transition graph is
// enforced beyond cancelled being terminal; vendors pick freely among the
// five non-pending targets.
type Status string

const (
	StatusPending      Status = "pending"
	StatusAcknowledged Status = "acknowledged"
	StatusConfirmed    Status = "confirmed"
	StatusInTransit    Status = "in-transit"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
)

var (
	ErrInvalidStatus    = errors.New("order status is invalid")
	ErrOrderCancelled   = errors.New("cancelled orders cannot change")
	ErrNoItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity  = errors.New("item quantity must be greater than zero")
	ErrMissingCustomer  = errors.New("order must reference a customer")
	ErrMissingVendor    = errors.New("order must reference a vendor")
	ErrMissingAddress   = errors.New("order must reference a delivery address")
	ErrInvoiceExists    = errors.New("order already has an invoice")
	ErrInvoiceForbidden = errors.New("cancelled orders cannot be invoiced")
)

// Order is the purchase aggregate. Customer and vendor names are
// denormalized at creation so later profile edits do not rewrite history.
type Order struct {
	ID            int64
	CustomerID    int64
	CustomerName  string
	CustomerPhone string
	VendorID      int64
	VendorName    string
	AreaID        int64
	AddressID     int64
	Total         float64
	Status        Status
	OrderedAt     time.Time
	DeliveryDate  time.Time
	PreferredTime string
	InvoiceID     *int64

	Items    []OrderItem
	Messages []OrderMessage
	Address  *DeliveryAddress
}

// OrderItem is one order line. Name and price are snapshots taken at
// order time, never re-read from the live inventory.
type OrderItem struct {
	ID       int64
	OrderID  int64
	ItemID   int64
	Name     string
	Quantity int32
	Price    float64
}

// Sender identifies which side of the thread wrote a message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderVendor   Sender = "vendor"
)

var (
	ErrInvalidSender = errors.New("message sender must be customer or vendor")
	ErrEmptyMessage  = errors.New("message body is required")
)

// OrderMessage is one entry in the append-only order thread.
type OrderMessage struct {
	ID         int64
	OrderID    int64
	Sender     Sender
	SenderName string
	Body       string
	SentAt     time.Time
}

// InvoiceStatus tracks invoice settlement.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "draft"
	InvoiceSent  InvoiceStatus = "sent"
	InvoicePaid  InvoiceStatus = "paid"
)

// Invoice is the billing record generated for a completed order.
type Invoice struct {
	ID        int64
	Code      string
	OrderID   int64
	Amount    float64
	IssuedAt  time.Time
	DueAt     time.Time
	Status    InvoiceStatus
}

// DeliveryAddress is the read model attached to composite order reads.
type DeliveryAddress struct {
	ID     int64
	Label  string
	Street string
	City   string
	State  string
	Zip    string
}

// NewOrder validates and constructs an order in the pending state.
func NewOrder(customerID int64, vendorID int64, areaID int64, addressID int64, items []OrderItem) (*Order, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomer
	}
	if vendorID <= 0 {
		return nil, ErrMissingVendor
	}
	if addressID <= 0 {
		return nil, ErrMissingAddress
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	order := &Order{
		CustomerID: customerID,
		VendorID:   vendorID,
		AreaID:     areaID,
		AddressID:  addressID,
		Status:     StatusPending,
		Items:      make([]OrderItem, 0, len(items)),
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		order.Items = append(order.Items, item)
		order.Total += item.Price * float64(item.Quantity)
	}
	return order, nil
}

// ChangeStatus moves the order to the requested state. Any target is
// accepted except that a cancelled order is frozen forever.
func (o *Order) ChangeStatus(status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	if o.Status == StatusCancelled {
		return ErrOrderCancelled
	}
	o.Status = status
	return nil
}

// CanInvoice reports whether an invoice may be generated for the order.
func (o *Order) CanInvoice() error {
	if o.InvoiceID != nil {
		return ErrInvoiceExists
	}
	if o.Status == StatusCancelled {
		return ErrInvoiceForbidden
	}
	return nil
}

// Validate re-applies invariants for persistence.
func (o *Order) Validate() error {
	if o.CustomerID <= 0 {
		return ErrMissingCustomer
	}
	if o.VendorID <= 0 {
		return ErrMissingVendor
	}
	if o.AddressID <= 0 {
		return ErrMissingAddress
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// NewOrderMessage validates and constructs a thread entry.
func NewOrderMessage(orderID int64, sender Sender, senderName, body string) (*OrderMessage, error) {
	if sender != SenderCustomer && sender != SenderVendor {
		return nil, ErrInvalidSender
	}
	if body == "" {
		return nil, ErrEmptyMessage
	}
	return &OrderMessage{
		OrderID:    orderID,
		Sender:     sender,
		SenderName: senderName,
		Body:       body,
	}, nil
}

// IsValidStatus reports whether the value is one of the six known states.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusAcknowledged, StatusConfirmed,
		StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
