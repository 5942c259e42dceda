package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/adapters/memory"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
)

func newOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, 7, 10, 55, []domain.OrderItem{
		{ItemID: 100, Name: "19L Bottle", Quantity: 2, Price: 5.5},
	})
	require.NoError(t, err)
	order.OrderedAt = time.Now().UTC()
	order.DeliveryDate = order.OrderedAt.AddDate(0, 0, 1)
	return order
}

func invoiceFor(order *domain.Order, code string) *domain.Invoice {
	issued := time.Now().UTC()
	return &domain.Invoice{
		Code:     code,
		OrderID:  order.ID,
		Amount:   order.Total,
		IssuedAt: issued,
		DueAt:    issued.Add(7 * 24 * time.Hour),
		Status:   domain.InvoiceDraft,
	}
}

func TestCreateInvoice_SecondWriteRejected(t *testing.T) {
	repo := memory.NewRepository(nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder(t))
	require.NoError(t, err)

	first, err := repo.CreateInvoice(ctx, invoiceFor(created, "INV-1A2B3C4D"))
	require.NoError(t, err)

	_, err = repo.CreateInvoice(ctx, invoiceFor(created, "INV-5E6F7A8B"))
	require.ErrorIs(t, err, domain.ErrInvoiceExists)

	linked, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.InvoiceID)
	require.Equal(t, first.ID, *linked.InvoiceID)
}
