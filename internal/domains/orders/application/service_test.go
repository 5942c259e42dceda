package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/memory"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

var errUnknownRef = errors.New("unknown reference")

type fakeDirectory struct {
	customers map[int64]ports.CustomerRef
	addresses map[int64]ports.AddressRef
}

func (f *fakeDirectory) LookupCustomer(_ context.Context, id int64) (*ports.CustomerRef, error) {
	if ref, ok := f.customers[id]; ok {
		return &ref, nil
	}
	return nil, errUnknownRef
}

func (f *fakeDirectory) LookupAddress(_ context.Context, id int64) (*ports.AddressRef, error) {
	if ref, ok := f.addresses[id]; ok {
		return &ref, nil
	}
	return nil, errUnknownRef
}

type fakeCatalog struct {
	areas map[int64]ports.AreaRef
	items map[int64]ports.ItemRef
}

func (f *fakeCatalog) LookupArea(_ context.Context, id int64) (*ports.AreaRef, error) {
	if ref, ok := f.areas[id]; ok {
		return &ref, nil
	}
	return nil, errUnknownRef
}

func (f *fakeCatalog) LookupItem(_ context.Context, id int64) (*ports.ItemRef, error) {
	if ref, ok := f.items[id]; ok {
		return &ref, nil
	}
	return nil, errUnknownRef
}

func (f *fakeCatalog) ListAreaItems(_ context.Context, _ int64) ([]*ports.ItemRef, error) {
	refs := make([]*ports.ItemRef, 0, len(f.items))
	for id := range f.items {
		ref := f.items[id]
		refs = append(refs, &ref)
	}
	return refs, nil
}

type recordingAdjuster struct {
	calls map[int64]int32
}

func (r *recordingAdjuster) DecrementStock(_ context.Context, itemID int64, quantity int32) (int32, error) {
	if r.calls == nil {
		r.calls = map[int64]int32{}
	}
	r.calls[itemID] += quantity
	return 0, nil
}

func fixture() (*application.Service, *ordersmemory.Repository, *recordingAdjuster, time.Time) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	adjuster := &recordingAdjuster{}
	repo := ordersmemory.NewRepository(adjuster)
	directory := &fakeDirectory{
		customers: map[int64]ports.CustomerRef{
			1: {ID: 1, Name: "Amina Diallo", Phone: "555-0110"},
		},
		addresses: map[int64]ports.AddressRef{},
	}
	catalog := &fakeCatalog{
		areas: map[int64]ports.AreaRef{
			10: {ID: 10, Name: "Riverside", VendorID: 7, VendorName: "ClearSprings Water"},
		},
		items: map[int64]ports.ItemRef{
			100: {ID: 100, VendorID: 7, Name: "19L Bottle", Price: 5.5, Stock: 12},
			101: {ID: 101, VendorID: 7, Name: "Dispenser Pump", Price: 2.0, Stock: 4},
		},
	}
	svc := application.NewService(repo, directory, catalog, application.WithClock(func() time.Time { return now }))
	return svc, repo, adjuster, now
}

func placeOrder(t *testing.T, svc *application.Service) *domain.Order {
	t.Helper()
	order, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID:    1,
		AreaID:        10,
		AddressID:     55,
		PreferredTime: "morning",
		Items: []types.OrderLineInput{
			{ItemID: 100, Quantity: 2},
			{ItemID: 101, Quantity: 3},
		},
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder_SnapshotsAndTotals(t *testing.T) {
	svc, _, _, now := fixture()

	order := placeOrder(t, svc)

	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, "Amina Diallo", order.CustomerName)
	require.Equal(t, "555-0110", order.CustomerPhone)
	require.Equal(t, int64(7), order.VendorID)
	require.Equal(t, "ClearSprings Water", order.VendorName)
	require.InDelta(t, 2*5.5+3*2.0, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	require.Equal(t, "19L Bottle", order.Items[0].Name)
	require.InDelta(t, 5.5, order.Items[0].Price, 1e-9)
	require.Equal(t, now, order.OrderedAt)
	require.Equal(t, now.AddDate(0, 0, 1), order.DeliveryDate)
}

func TestPlaceOrder_UnknownItem(t *testing.T) {
	svc, _, _, _ := fixture()

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: 1,
		AreaID:     10,
		AddressID:  55,
		Items:      []types.OrderLineInput{{ItemID: 999, Quantity: 1}},
	})
	require.ErrorIs(t, err, errUnknownRef)
}

func TestPlaceOrder_ZeroQuantity(t *testing.T) {
	svc, _, _, _ := fixture()

	_, err := svc.PlaceOrder(context.Background(), types.PlaceOrderInput{
		CustomerID: 1,
		AreaID:     10,
		AddressID:  55,
		Items:      []types.OrderLineInput{{ItemID: 100, Quantity: 0}},
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestChangeStatus_DeliveredDecrementsStockOnce(t *testing.T) {
	svc, _, adjuster, _ := fixture()
	order := placeOrder(t, svc)

	delivered, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: order.ID,
		Status:  string(domain.StatusDelivered),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, delivered.Status)
	require.Equal(t, int32(2), adjuster.calls[100])
	require.Equal(t, int32(3), adjuster.calls[101])

	// Repeating the transition leaves stock untouched.
	again, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: order.ID,
		Status:  string(domain.StatusDelivered),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, again.Status)
	require.Equal(t, int32(2), adjuster.calls[100])
	require.Equal(t, int32(3), adjuster.calls[101])
}

func TestChangeStatus_CancelledIsTerminal(t *testing.T) {
	svc, _, adjuster, _ := fixture()
	order := placeOrder(t, svc)

	_, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: order.ID,
		Status:  string(domain.StatusCancelled),
	})
	require.NoError(t, err)

	for _, status := range []domain.Status{
		domain.StatusAcknowledged,
		domain.StatusDelivered,
		domain.StatusCancelled,
	} {
		_, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
			OrderID: order.ID,
			Status:  string(status),
		})
		require.ErrorIs(t, err, domain.ErrOrderCancelled)
	}
	require.Empty(t, adjuster.calls)
}

func TestChangeStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _, _ := fixture()
	order := placeOrder(t, svc)

	_, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: order.ID,
		Status:  "misplaced",
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestChangeStatus_UnknownOrder(t *testing.T) {
	svc, _, _, _ := fixture()

	_, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: 404,
		Status:  string(domain.StatusConfirmed),
	})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSendMessage_AppendsToThread(t *testing.T) {
	svc, _, _, now := fixture()
	order := placeOrder(t, svc)

	msg, err := svc.SendMessage(context.Background(), types.SendMessageInput{
		OrderID:    order.ID,
		Sender:     string(domain.SenderVendor),
		SenderName: "ClearSprings Water",
		Body:       "Truck leaves at nine.",
	})
	require.NoError(t, err)
	require.Equal(t, now, msg.SentAt)

	thread, err := svc.ListMessages(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	require.Equal(t, domain.SenderVendor, thread[0].Sender)
	require.Equal(t, "Truck leaves at nine.", thread[0].Body)
}

func TestSendMessage_RejectsUnknownSender(t *testing.T) {
	svc, _, _, _ := fixture()
	order := placeOrder(t, svc)

	_, err := svc.SendMessage(context.Background(), types.SendMessageInput{
		OrderID: order.ID,
		Sender:  "dispatcher",
		Body:    "hello",
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidSender)
}

func TestGenerateInvoice_OncePerOrder(t *testing.T) {
	svc, _, _, now := fixture()
	order := placeOrder(t, svc)

	invoice, err := svc.GenerateInvoice(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(invoice.Code, "INV-"))
	require.InDelta(t, order.Total, invoice.Amount, 1e-9)
	require.Equal(t, now, invoice.IssuedAt)
	require.Equal(t, now.Add(7*24*time.Hour), invoice.DueAt)
	require.Equal(t, domain.InvoiceDraft, invoice.Status)

	_, err = svc.GenerateInvoice(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvoiceExists)
}

func TestGenerateInvoice_ForbiddenForCancelled(t *testing.T) {
	svc, _, _, _ := fixture()
	order := placeOrder(t, svc)

	_, err := svc.ChangeStatus(context.Background(), types.ChangeStatusInput{
		OrderID: order.ID,
		Status:  string(domain.StatusCancelled),
	})
	require.NoError(t, err)

	_, err = svc.GenerateInvoice(context.Background(), order.ID)
	require.ErrorIs(t, err, domain.ErrInvoiceForbidden)
}

func TestListByVendor_EmptyIsNotAnError(t *testing.T) {
	svc, _, _, _ := fixture()

	orders, err := svc.ListByVendor(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, orders)
	require.Empty(t, orders)
}

func TestListByCustomer_NewestFirst(t *testing.T) {
	svc, _, _, _ := fixture()
	first := placeOrder(t, svc)
	second := placeOrder(t, svc)

	orders, err := svc.ListByCustomer(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, second.ID, orders[0].ID)
	require.Equal(t, first.ID, orders[1].ID)
}
