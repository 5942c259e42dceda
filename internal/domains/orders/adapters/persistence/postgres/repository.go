package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to the orders table.
type orderRecord struct {
	ID            int64     `gorm:"primaryKey;column:id"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	CustomerName  string    `gorm:"column:customer_name"`
	CustomerPhone string    `gorm:"column:customer_phone"`
	VendorID      int64     `gorm:"column:vendor_id;index"`
	VendorName    string    `gorm:"column:vendor_name"`
	AreaID        int64     `gorm:"column:area_id"`
	AddressID     int64     `gorm:"column:address_id"`
	Total         float64   `gorm:"column:total;type:decimal(10,2)"`
	Status        string    `gorm:"column:status;type:varchar(32);index;check:status IN ('pending','acknowledged','confirmed','in-transit','delivered','cancelled')"`
	OrderedAt     time.Time `gorm:"column:ordered_at;index"`
	DeliveryDate  time.Time `gorm:"column:delivery_date"`
	PreferredTime string    `gorm:"column:preferred_time"`
	InvoiceID     *int64    `gorm:"column:invoice_id"`
}

func (orderRecord) TableName() string { return "orders" }

// orderItemRecord maps one order line to the order_items table.
type orderItemRecord struct {
	ID       int64   `gorm:"primaryKey;column:id"`
	OrderID  int64   `gorm:"column:order_id;index"`
	ItemID   int64   `gorm:"column:item_id"`
	Name     string  `gorm:"column:name"`
	Quantity int32   `gorm:"column:quantity;check:quantity > 0"`
	Price    float64 `gorm:"column:price;type:decimal(10,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// messageRecord maps a thread entry to the order_messages table.
type messageRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	OrderID    int64     `gorm:"column:order_id;index"`
	Sender     string    `gorm:"column:sender;type:varchar(16);check:sender IN ('customer','vendor')"`
	SenderName string    `gorm:"column:sender_name"`
	Body       string    `gorm:"column:body"`
	SentAt     time.Time `gorm:"column:sent_at;index"`
}

func (messageRecord) TableName() string { return "order_messages" }

// invoiceRecord maps an invoice to the invoices table.
type invoiceRecord struct {
	ID       int64     `gorm:"primaryKey;column:id"`
	Code     string    `gorm:"column:code;uniqueIndex"`
	OrderID  int64     `gorm:"column:order_id;index"`
	Amount   float64   `gorm:"column:amount;type:decimal(10,2)"`
	IssuedAt time.Time `gorm:"column:issued_at"`
	DueAt    time.Time `gorm:"column:due_at"`
	Status   string    `gorm:"column:status;type:varchar(16);check:status IN ('draft','sent','paid')"`
}

func (invoiceRecord) TableName() string { return "invoices" }

// fulfillmentRecord marks that an order's delivery decrement already ran.
// The unique order_id makes the delivered transition idempotent.
type fulfillmentRecord struct {
	OrderID     int64     `gorm:"primaryKey;column:order_id"`
	RequestID   string    `gorm:"column:request_id;size:64"`
	FulfilledAt time.Time `gorm:"column:fulfilled_at"`
}

func (fulfillmentRecord) TableName() string { return "order_fulfillments" }

// addressRow is the read-only projection joined into composite reads.
type addressRow struct {
	ID     int64  `gorm:"column:id"`
	Label  string `gorm:"column:label"`
	Street string `gorm:"column:street"`
	City   string `gorm:"column:city"`
	State  string `gorm:"column:state"`
	Zip    string `gorm:"column:zip"`
}

func (addressRow) TableName() string { return "addresses" }

// Create persists the order and its lines in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toOrderRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for i := range order.Items {
			line := toItemRecord(&order.Items[i])
			line.OrderID = record.ID
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches one order and attaches items, messages, and address.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	order := record.toDomain()
	r.attach(ctx, order)
	return order, nil
}

// ListByCustomer returns the customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	return r.listWhere(ctx, "customer_id = ?", customerID)
}

// ListByVendor returns the vendor's orders, newest first.
func (r *Repository) ListByVendor(ctx context.Context, vendorID int64) ([]*domain.Order, error) {
	return r.listWhere(ctx, "vendor_id = ?", vendorID)
}

func (r *Repository) listWhere(ctx context.Context, query string, arg any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where(query, arg).
		Order("ordered_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order := records[i].toDomain()
		r.attach(ctx, order)
		orders = append(orders, order)
	}
	return orders, nil
}

// attach runs the three-way fan-out for one order. A failed sub-read
// degrades that field to its zero value rather than failing the order.
func (r *Repository) attach(ctx context.Context, order *domain.Order) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var lines []orderItemRecord
		if err := r.db.WithContext(gctx).
			Where("order_id = ?", order.ID).
			Order("id ASC").
			Find(&lines).Error; err != nil {
			return nil
		}
		items := make([]domain.OrderItem, 0, len(lines))
		for i := range lines {
			items = append(items, *lines[i].toDomain())
		}
		order.Items = items
		return nil
	})
	g.Go(func() error {
		var thread []messageRecord
		if err := r.db.WithContext(gctx).
			Where("order_id = ?", order.ID).
			Order("sent_at ASC, id ASC").
			Find(&thread).Error; err != nil {
			return nil
		}
		msgs := make([]domain.OrderMessage, 0, len(thread))
		for i := range thread {
			msgs = append(msgs, *thread[i].toDomain())
		}
		order.Messages = msgs
		return nil
	})
	g.Go(func() error {
		var row addressRow
		if err := r.db.WithContext(gctx).First(&row, "id = ?", order.AddressID).Error; err != nil {
			return nil
		}
		order.Address = &domain.DeliveryAddress{
			ID:     row.ID,
			Label:  row.Label,
			Street: row.Street,
			City:   row.City,
			State:  row.State,
			Zip:    row.Zip,
		}
		return nil
	})
	_ = g.Wait()
}

// UpdateStatus writes a non-delivered transition. Cancelled orders are
// guarded in the statement itself.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND status <> ?", id, string(domain.StatusCancelled)).
		Update("status", string(status))
	if result.Error != nil {
		return nil, platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrOrderCancelled
	}
	return r.GetByID(ctx, id)
}

// MarkDelivered sets the delivered status and decrements stock for every
// line, all inside one transaction. The fulfillment marker's unique
// order_id guarantees the decrement runs at most once per order.
func (r *Repository) MarkDelivered(ctx context.Context, id int64) (*domain.Order, bool, error) {
	if err := r.ensureDB(); err != nil {
		return nil, false, err
	}
	performed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orderRecord{}).
			Where("id = ? AND status <> ?", id, string(domain.StatusCancelled)).
			Update("status", string(domain.StatusDelivered))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var record orderRecord
			if err := tx.First(&record, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ports.ErrNotFound
				}
				return err
			}
			return domain.ErrOrderCancelled
		}
		marker := fulfillmentRecord{
			OrderID:     id,
			RequestID:   uuid.NewString(),
			FulfilledAt: time.Now(),
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoNothing: true,
		}).Create(&marker)
		if insert.Error != nil {
			return insert.Error
		}
		if insert.RowsAffected == 0 {
			// Already fulfilled; repeating the transition is a no-op.
			return nil
		}
		performed = true
		var lines []orderItemRecord
		if err := tx.Where("order_id = ?", id).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			if err := tx.Table("inventory_items").
				Where("id = ?", line.ItemID).
				Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", line.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) || errors.Is(err, domain.ErrOrderCancelled) {
			return nil, false, err
		}
		return nil, false, platformpostgres.Classify(err)
	}
	order, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, performed, err
	}
	return order, performed, nil
}

// AppendMessage inserts one thread entry.
func (r *Repository) AppendMessage(ctx context.Context, msg *domain.OrderMessage) (*domain.OrderMessage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, errors.New("message is nil")
	}
	record := toMessageRecord(msg)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// ListMessages returns the thread, oldest first.
func (r *Repository) ListMessages(ctx context.Context, orderID int64) ([]*domain.OrderMessage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []messageRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("sent_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	msgs := make([]*domain.OrderMessage, 0, len(records))
	for i := range records {
		msgs = append(msgs, records[i].toDomain())
	}
	return msgs, nil
}

// CreateInvoice inserts the invoice and links it to the order in the same
// transaction. An already-invoiced order rejects the link.
func (r *Repository) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, errors.New("invoice is nil")
	}
	record := toInvoiceRecord(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		link := tx.Model(&orderRecord{}).
			Where("id = ? AND invoice_id IS NULL", record.OrderID).
			Update("invoice_id", record.ID)
		if link.Error != nil {
			return link.Error
		}
		if link.RowsAffected == 0 {
			return domain.ErrInvoiceExists
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceExists) {
			return nil, err
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// GetInvoice fetches an invoice by identifier.
func (r *Repository) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record invoiceRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrInvoiceNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres orders repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		VendorID:      order.VendorID,
		VendorName:    order.VendorName,
		AreaID:        order.AreaID,
		AddressID:     order.AddressID,
		Total:         order.Total,
		Status:        string(order.Status),
		OrderedAt:     order.OrderedAt,
		DeliveryDate:  order.DeliveryDate,
		PreferredTime: order.PreferredTime,
		InvoiceID:     order.InvoiceID,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		VendorID:      r.VendorID,
		VendorName:    r.VendorName,
		AreaID:        r.AreaID,
		AddressID:     r.AddressID,
		Total:         r.Total,
		Status:        domain.Status(r.Status),
		OrderedAt:     r.OrderedAt,
		DeliveryDate:  r.DeliveryDate,
		PreferredTime: r.PreferredTime,
		InvoiceID:     r.InvoiceID,
	}
}

func toItemRecord(item *domain.OrderItem) orderItemRecord {
	return orderItemRecord{
		ID:       item.ID,
		OrderID:  item.OrderID,
		ItemID:   item.ItemID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
}

func (r orderItemRecord) toDomain() *domain.OrderItem {
	return &domain.OrderItem{
		ID:       r.ID,
		OrderID:  r.OrderID,
		ItemID:   r.ItemID,
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    r.Price,
	}
}

func toMessageRecord(msg *domain.OrderMessage) messageRecord {
	return messageRecord{
		ID:         msg.ID,
		OrderID:    msg.OrderID,
		Sender:     string(msg.Sender),
		SenderName: msg.SenderName,
		Body:       msg.Body,
		SentAt:     msg.SentAt,
	}
}

func (r messageRecord) toDomain() *domain.OrderMessage {
	return &domain.OrderMessage{
		ID:         r.ID,
		OrderID:    r.OrderID,
		Sender:     domain.Sender(r.Sender),
		SenderName: r.SenderName,
		Body:       r.Body,
		SentAt:     r.SentAt,
	}
}

func toInvoiceRecord(inv *domain.Invoice) invoiceRecord {
	return invoiceRecord{
		ID:       inv.ID,
		Code:     inv.Code,
		OrderID:  inv.OrderID,
		Amount:   inv.Amount,
		IssuedAt: inv.IssuedAt,
		DueAt:    inv.DueAt,
		Status:   string(inv.Status),
	}
}

func (r invoiceRecord) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:       r.ID,
		Code:     r.Code,
		OrderID:  r.OrderID,
		Amount:   r.Amount,
		IssuedAt: r.IssuedAt,
		DueAt:    r.DueAt,
		Status:   domain.InvoiceStatus(r.Status),
	}
}
