package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/memory"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

func bookingFixture() (*application.Booking, *fakeDirectory, time.Time) {
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	areaID := int64(10)
	directory := &fakeDirectory{
		customers: map[int64]ports.CustomerRef{
			1: {ID: 1, Name: "Amina Diallo", Phone: "555-0110"},
		},
		addresses: map[int64]ports.AddressRef{
			55: {ID: 55, UserID: 1, AreaID: &areaID},
			56: {ID: 56, UserID: 1, AreaID: nil},
		},
	}
	catalog := &fakeCatalog{
		areas: map[int64]ports.AreaRef{
			10: {ID: 10, Name: "Riverside", VendorID: 7, VendorName: "ClearSprings Water"},
		},
		items: map[int64]ports.ItemRef{
			100: {ID: 100, VendorID: 7, Name: "19L Bottle", Price: 5.5, Stock: 12},
		},
	}
	repo := ordersmemory.NewRepository(&recordingAdjuster{})
	svc := application.NewService(repo, directory, catalog, application.WithClock(func() time.Time { return now }))
	booking := application.NewBooking(svc, directory, catalog, application.WithBookingClock(func() time.Time { return now }))
	return booking, directory, now
}

func shelfItem() ports.ItemRef {
	return ports.ItemRef{ID: 100, VendorID: 7, Name: "19L Bottle", Price: 5.5, Stock: 12}
}

func TestCart_AddCapsAtObservedStock(t *testing.T) {
	cart := application.NewCart()
	item := ports.ItemRef{ID: 100, Name: "19L Bottle", Price: 5.5, Stock: 3}

	require.NoError(t, cart.Add(item, 2))
	require.NoError(t, cart.Add(item, 5))

	lines := cart.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, int32(3), lines[0].Quantity)
}

func TestCart_AddRejectsOutOfStock(t *testing.T) {
	cart := application.NewCart()
	err := cart.Add(ports.ItemRef{ID: 100, Name: "19L Bottle", Stock: 0}, 1)
	require.ErrorIs(t, err, application.ErrOutOfStock)
	require.Zero(t, cart.Len())
}

func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 2))

	cart.SetQuantity(100, 0)
	require.Zero(t, cart.Len())
}

func TestCart_Total(t *testing.T) {
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 2))
	require.NoError(t, cart.Add(ports.ItemRef{ID: 101, Name: "Dispenser Pump", Price: 2.0, Stock: 4}, 3))

	require.InDelta(t, 2*5.5+3*2.0, cart.Total(), 1e-9)
}

func TestAvailableProducts_EmptyShelfOutsideServiceAreas(t *testing.T) {
	booking, _, _ := bookingFixture()

	shelf, err := booking.AvailableProducts(context.Background(), 56)
	require.NoError(t, err)
	require.Empty(t, shelf)
}

func TestAvailableProducts_ListsAreaInventory(t *testing.T) {
	booking, _, _ := bookingFixture()

	shelf, err := booking.AvailableProducts(context.Background(), 55)
	require.NoError(t, err)
	require.Len(t, shelf, 1)
	require.Equal(t, "19L Bottle", shelf[0].Name)
}

func TestSubmit_Validations(t *testing.T) {
	booking, _, _ := bookingFixture()
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 1))

	_, err := booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID: 1, PreferredTime: "morning",
	})
	require.ErrorIs(t, err, application.ErrNoAddress)

	_, err = booking.Submit(context.Background(), application.NewCart(), application.SubmitInput{
		CustomerID: 1, AddressID: 55, PreferredTime: "morning",
	})
	require.ErrorIs(t, err, application.ErrEmptyCart)

	_, err = booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID: 1, AddressID: 55,
	})
	require.ErrorIs(t, err, application.ErrNoPreferredTime)

	// Address without a service area cannot be delivered to.
	_, err = booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID: 1, AddressID: 56, PreferredTime: "morning",
	})
	require.ErrorIs(t, err, application.ErrNoAddress)

	require.Equal(t, 1, cart.Len())
}

func TestSubmit_RejectsSameDayDelivery(t *testing.T) {
	booking, _, now := bookingFixture()
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 1))

	_, err := booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
		DeliveryDate:  now,
	})
	require.ErrorIs(t, err, application.ErrDeliveryTooSoon)
	require.Equal(t, 1, cart.Len())
}

func TestSubmit_PlacesOrderAndClearsCart(t *testing.T) {
	booking, _, now := bookingFixture()
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 2))

	order, err := booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, int64(10), order.AreaID)
	require.Equal(t, "morning", order.PreferredTime)
	require.InDelta(t, 2*5.5, order.Total, 1e-9)

	// The default delivery date is the next calendar day.
	next := now.AddDate(0, 0, 1)
	require.Equal(t, time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location()), order.DeliveryDate)
	require.Zero(t, cart.Len())
}

func TestSubmit_KeepsCartOnFailure(t *testing.T) {
	booking, directory, _ := bookingFixture()
	delete(directory.customers, 1)
	cart := application.NewCart()
	require.NoError(t, cart.Add(shelfItem(), 2))

	_, err := booking.Submit(context.Background(), cart, application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	})
	require.ErrorIs(t, err, errUnknownRef)
	require.Equal(t, 1, cart.Len())
}

func TestSubmitSelection_PlacesOrder(t *testing.T) {
	booking, _, _ := bookingFixture()

	order, err := booking.SubmitSelection(context.Background(), application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	}, []types.OrderLineInput{{ItemID: 100, Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.InDelta(t, 2*5.5, order.Total, 1e-9)
}

func TestSubmitSelection_CapsQuantityAtStock(t *testing.T) {
	booking, _, _ := bookingFixture()

	order, err := booking.SubmitSelection(context.Background(), application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	}, []types.OrderLineInput{{ItemID: 100, Quantity: 20}})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, int32(12), order.Items[0].Quantity)
}

func TestSubmitSelection_UnknownItem(t *testing.T) {
	booking, _, _ := bookingFixture()

	_, err := booking.SubmitSelection(context.Background(), application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	}, []types.OrderLineInput{{ItemID: 999, Quantity: 1}})
	require.ErrorIs(t, err, errUnknownRef)
}

func TestSubmitSelection_EmptySelection(t *testing.T) {
	booking, _, _ := bookingFixture()

	_, err := booking.SubmitSelection(context.Background(), application.SubmitInput{
		CustomerID:    1,
		AddressID:     55,
		PreferredTime: "morning",
	}, nil)
	require.ErrorIs(t, err, application.ErrEmptyCart)
}
