package mapper

import (
	"time"

	openapitypes "github.com/oapi-codegen/runtime/types"

	ordersapp "github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	ordertypes "github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

// OrderLine is one product selection inside an order payload.
type OrderLine struct {
	ItemID   int64 `json:"itemId" binding:"required"`
	Quantity int32 `json:"quantity" binding:"required"`
}

// PlaceOrder captures the inbound order payload.
type PlaceOrder struct {
	CustomerID    int64              `json:"customerId" binding:"required"`
	AreaID        int64              `json:"areaId" binding:"required"`
	AddressID     int64              `json:"addressId" binding:"required"`
	PreferredTime string             `json:"preferredTime"`
	DeliveryDate  *openapitypes.Date `json:"deliveryDate,omitempty"`
	Items         []OrderLine        `json:"items" binding:"required"`
}

// SubmitBooking captures the customer booking form together with the
// cart selection.
type SubmitBooking struct {
	CustomerID    int64              `json:"customerId" binding:"required"`
	AddressID     int64              `json:"addressId" binding:"required"`
	PreferredTime string             `json:"preferredTime"`
	DeliveryDate  *openapitypes.Date `json:"deliveryDate,omitempty"`
	Items         []OrderLine        `json:"items" binding:"required"`
}

// ChangeStatus captures a lifecycle transition request.
type ChangeStatus struct {
	Status string `json:"status" binding:"required"`
}

// SendMessage captures one inbound thread entry.
type SendMessage struct {
	Sender     string `json:"sender" binding:"required"`
	SenderName string `json:"senderName"`
	Body       string `json:"body" binding:"required"`
}

// OrderItem is the HTTP representation of one order line.
type OrderItem struct {
	ID       int64   `json:"id"`
	ItemID   int64   `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderMessage is the HTTP representation of one thread entry.
type OrderMessage struct {
	ID         int64     `json:"id"`
	OrderID    int64     `json:"orderId"`
	Sender     string    `json:"sender"`
	SenderName string    `json:"senderName,omitempty"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}

// DeliveryAddress is the address snapshot attached to order reads.
type DeliveryAddress struct {
	ID     int64  `json:"id"`
	Label  string `json:"label,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// Order is the HTTP representation of the order aggregate.
type Order struct {
	ID            int64              `json:"id"`
	CustomerID    int64              `json:"customerId"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
	VendorID      int64              `json:"vendorId"`
	VendorName    string             `json:"vendorName,omitempty"`
	AreaID        int64              `json:"areaId"`
	AddressID     int64              `json:"addressId"`
	Total         float64            `json:"total"`
	Status        string             `json:"status"`
	OrderedAt     time.Time          `json:"orderedAt"`
	DeliveryDate  openapitypes.Date  `json:"deliveryDate"`
	PreferredTime string             `json:"preferredTime,omitempty"`
	InvoiceID     *int64             `json:"invoiceId,omitempty"`
	Items         []OrderItem        `json:"items"`
	Messages      []OrderMessage     `json:"messages,omitempty"`
	Address       *DeliveryAddress   `json:"address,omitempty"`
}

// Invoice is the HTTP representation of a billing document.
type Invoice struct {
	ID       int64     `json:"id"`
	Code     string    `json:"code"`
	OrderID  int64     `json:"orderId"`
	Amount   float64   `json:"amount"`
	IssuedAt time.Time `json:"issuedAt"`
	DueAt    time.Time `json:"dueAt"`
	Status   string    `json:"status"`
}

// ShelfItem is the inventory snapshot shown to a customer browsing by
// delivery address.
type ShelfItem struct {
	ID       int64   `json:"id"`
	VendorID int64   `json:"vendorId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int32   `json:"stock"`
}

// FromItemRefs maps catalog snapshots to shelf entries.
func FromItemRefs(list []*ports.ItemRef) []ShelfItem {
	result := make([]ShelfItem, 0, len(list))
	for _, item := range list {
		result = append(result, ShelfItem{
			ID:       item.ID,
			VendorID: item.VendorID,
			Name:     item.Name,
			Price:    item.Price,
			Stock:    item.Stock,
		})
	}
	return result
}

// ToPlaceOrderInput converts the order payload into an application input.
func ToPlaceOrderInput(model PlaceOrder) ordertypes.PlaceOrderInput {
	input := ordertypes.PlaceOrderInput{
		CustomerID:    model.CustomerID,
		AreaID:        model.AreaID,
		AddressID:     model.AddressID,
		PreferredTime: model.PreferredTime,
	}
	if model.DeliveryDate != nil {
		input.DeliveryDate = model.DeliveryDate.Time
	}
	input.Items = make([]ordertypes.OrderLineInput, 0, len(model.Items))
	for _, line := range model.Items {
		input.Items = append(input.Items, ordertypes.OrderLineInput{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return input
}

// ToSubmitBookingInput splits the booking payload into the form input and
// the item selection.
func ToSubmitBookingInput(model SubmitBooking) (ordersapp.SubmitInput, []ordertypes.OrderLineInput) {
	input := ordersapp.SubmitInput{
		CustomerID:    model.CustomerID,
		AddressID:     model.AddressID,
		PreferredTime: model.PreferredTime,
	}
	if model.DeliveryDate != nil {
		input.DeliveryDate = model.DeliveryDate.Time
	}
	selection := make([]ordertypes.OrderLineInput, 0, len(model.Items))
	for _, line := range model.Items {
		selection = append(selection, ordertypes.OrderLineInput{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		})
	}
	return input, selection
}

// ToChangeStatusInput converts a transition payload into an application input.
func ToChangeStatusInput(orderID int64, model ChangeStatus) ordertypes.ChangeStatusInput {
	return ordertypes.ChangeStatusInput{OrderID: orderID, Status: model.Status}
}

// ToSendMessageInput converts a thread payload into an application input.
func ToSendMessageInput(orderID int64, model SendMessage) ordertypes.SendMessageInput {
	return ordertypes.SendMessageInput{
		OrderID:    orderID,
		Sender:     model.Sender,
		SenderName: model.SenderName,
		Body:       model.Body,
	}
}

// FromDomainOrder maps the order aggregate into its transport shape.
func FromDomainOrder(o *domain.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItem{
			ID:       item.ID,
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	var messages []OrderMessage
	for _, msg := range o.Messages {
		messages = append(messages, fromMessage(msg))
	}
	var address *DeliveryAddress
	if o.Address != nil {
		address = &DeliveryAddress{
			ID:     o.Address.ID,
			Label:  o.Address.Label,
			Street: o.Address.Street,
			City:   o.Address.City,
			State:  o.Address.State,
			Zip:    o.Address.Zip,
		}
	}
	return Order{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		VendorID:      o.VendorID,
		VendorName:    o.VendorName,
		AreaID:        o.AreaID,
		AddressID:     o.AddressID,
		Total:         o.Total,
		Status:        string(o.Status),
		OrderedAt:     o.OrderedAt,
		DeliveryDate:  openapitypes.Date{Time: o.DeliveryDate},
		PreferredTime: o.PreferredTime,
		InvoiceID:     cloneID(o.InvoiceID),
		Items:         items,
		Messages:      messages,
		Address:       address,
	}
}

// FromDomainOrderList maps a slice of orders to transport shapes.
func FromDomainOrderList(list []*domain.Order) []Order {
	result := make([]Order, 0, len(list))
	for _, o := range list {
		result = append(result, FromDomainOrder(o))
	}
	return result
}

// FromDomainMessage maps one thread entry into its transport shape.
func FromDomainMessage(m *domain.OrderMessage) OrderMessage {
	return fromMessage(*m)
}

// FromDomainMessageList maps a thread to transport shapes.
func FromDomainMessageList(list []*domain.OrderMessage) []OrderMessage {
	result := make([]OrderMessage, 0, len(list))
	for _, m := range list {
		result = append(result, fromMessage(*m))
	}
	return result
}

// FromDomainInvoice maps a billing document into its transport shape.
func FromDomainInvoice(inv *domain.Invoice) Invoice {
	return Invoice{
		ID:       inv.ID,
		Code:     inv.Code,
		OrderID:  inv.OrderID,
		Amount:   inv.Amount,
		IssuedAt: inv.IssuedAt,
		DueAt:    inv.DueAt,
		Status:   string(inv.Status),
	}
}

func fromMessage(m domain.OrderMessage) OrderMessage {
	return OrderMessage{
		ID:         m.ID,
		OrderID:    m.OrderID,
		Sender:     string(m.Sender),
		SenderName: m.SenderName,
		Body:       m.Body,
		SentAt:     m.SentAt,
	}
}

func cloneID(value *int64) *int64 {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}
