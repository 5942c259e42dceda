package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

var (
	ErrNoAddress       = errors.New("booking requires a delivery address")
	ErrEmptyCart       = errors.New("booking requires a non-empty cart")
	ErrNoPreferredTime = errors.New("booking requires a preferred delivery time")
	ErrDeliveryTooSoon = errors.New("delivery date must be tomorrow or later")
	ErrOutOfStock      = errors.New("item is out of stock")
)

// CartLine is one selected product. StockCap is the stock level observed
// when the shelf was loaded; it is not re-validated at submit time.
type CartLine struct {
	ItemID   int64
	Name     string
	Price    float64
	Quantity int32
	StockCap int32
}

// Cart holds the customer's selection in insertion order. It belongs to a
// single booking flow and is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts the item in the cart or raises an existing line's quantity,
// capped at the stock observed at load time.
func (c *Cart) Add(item ports.ItemRef, quantity int32) error {
	if item.Stock <= 0 {
		return ErrOutOfStock
	}
	if quantity <= 0 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Quantity = capQuantity(c.lines[i].Quantity+quantity, c.lines[i].StockCap)
			return nil
		}
	}
	c.lines = append(c.lines, CartLine{
		ItemID:   item.ID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: capQuantity(quantity, item.Stock),
		StockCap: item.Stock,
	})
	return nil
}

// SetQuantity replaces a line's quantity, capped at the observed stock.
// Zero removes the line.
func (c *Cart) SetQuantity(itemID int64, quantity int32) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity = capQuantity(quantity, c.lines[i].StockCap)
			return
		}
	}
}

// Remove drops the line for the given item.
func (c *Cart) Remove(itemID int64) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the selection in first-added order.
func (c *Cart) Lines() []CartLine {
	return append([]CartLine{}, c.lines...)
}

// Total sums price times quantity across the cart.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Len reports the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear empties the cart after a successful submission.
func (c *Cart) Clear() {
	c.lines = nil
}

func capQuantity(quantity, cap int32) int32 {
	if cap > 0 && quantity > cap {
		return cap
	}
	return quantity
}

// SubmitInput carries the booking form state alongside the cart.
type SubmitInput struct {
	CustomerID    int64
	AddressID     int64
	PreferredTime string
	DeliveryDate  time.Time
}

// Booking assembles the customer-side cart flow: listing the products
// available at an address and turning a cart into a placed order.
type Booking struct {
	orders    ports.Service
	directory ports.CustomerDirectory
	catalog   ports.VendorCatalog
	now       func() time.Time
}

// NewBooking wires the booking flow with its collaborators.
func NewBooking(orders ports.Service, directory ports.CustomerDirectory, catalog ports.VendorCatalog, opts ...BookingOption) *Booking {
	b := &Booking{
		orders:    orders,
		directory: directory,
		catalog:   catalog,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// BookingOption configures optional booking collaborators.
type BookingOption func(*Booking)

// WithBookingClock overrides the time source, used by tests.
func WithBookingClock(now func() time.Time) BookingOption {
	return func(b *Booking) {
		if now != nil {
			b.now = now
		}
	}
}

// AvailableProducts lists the inventory visible at an address. An address
// outside every service area yields an empty shelf, not an error.
func (b *Booking) AvailableProducts(ctx context.Context, addressID int64) ([]*ports.ItemRef, error) {
	addr, err := b.directory.LookupAddress(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if addr.AreaID == nil {
		return []*ports.ItemRef{}, nil
	}
	return b.catalog.ListAreaItems(ctx, *addr.AreaID)
}

// Submit validates the booking form and places the order. On success the
// cart is cleared; on any failure cart and form state stay intact for a
// retry.
func (b *Booking) Submit(ctx context.Context, cart *Cart, input SubmitInput) (*domain.Order, error) {
	if input.AddressID <= 0 {
		return nil, ErrNoAddress
	}
	if cart == nil || cart.Len() == 0 {
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(input.PreferredTime) == "" {
		return nil, ErrNoPreferredTime
	}
	earliest := tomorrow(b.now())
	deliveryDate := input.DeliveryDate
	if deliveryDate.IsZero() {
		deliveryDate = earliest
	}
	if deliveryDate.Before(earliest) {
		return nil, ErrDeliveryTooSoon
	}
	addr, err := b.directory.LookupAddress(ctx, input.AddressID)
	if err != nil {
		return nil, err
	}
	if addr.AreaID == nil {
		return nil, ErrNoAddress
	}
	lines := make([]types.OrderLineInput, 0, cart.Len())
	for _, line := range cart.Lines() {
		lines = append(lines, types.OrderLineInput{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	order, err := b.orders.PlaceOrder(ctx, types.PlaceOrderInput{
		CustomerID:    input.CustomerID,
		AreaID:        *addr.AreaID,
		AddressID:     input.AddressID,
		PreferredTime: input.PreferredTime,
		DeliveryDate:  deliveryDate,
		Items:         lines,
	})
	if err != nil {
		return nil, err
	}
	cart.Clear()
	return order, nil
}

// SubmitSelection assembles a cart from the selected items' current
// snapshots and submits it, giving stateless transports a one-shot
// booking call.
func (b *Booking) SubmitSelection(ctx context.Context, input SubmitInput, selection []types.OrderLineInput) (*domain.Order, error) {
	cart := NewCart()
	for _, line := range selection {
		item, err := b.catalog.LookupItem(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if err := cart.Add(*item, line.Quantity); err != nil {
			return nil, err
		}
	}
	return b.Submit(ctx, cart, input)
}

func tomorrow(now time.Time) time.Time {
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}
