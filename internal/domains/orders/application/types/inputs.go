package types

import "time"

// OrderLineInput selects one inventory item and a quantity.
type OrderLineInput struct {
	ItemID   int64
	Quantity int32
}

// PlaceOrderInput captures the request to create an order. Vendor
// identity is resolved from the area; names, phone, and line prices are
// denormalized from the current snapshots at creation time.
type PlaceOrderInput struct {
	CustomerID    int64
	AreaID        int64
	AddressID     int64
	PreferredTime string
	DeliveryDate  time.Time
	Items         []OrderLineInput
}

// ChangeStatusInput moves an order to a new lifecycle state.
type ChangeStatusInput struct {
	OrderID int64
	Status  string
}

// SendMessageInput appends one entry to an order's message thread.
type SendMessageInput struct {
	OrderID    int64
	Sender     string
	SenderName string
	Body       string
}
