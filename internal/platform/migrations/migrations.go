package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&userRecord{},
		&addressRecord{},
		&areaRecord{},
		&itemRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&messageRecord{},
		&invoiceRecord{},
		&fulfillmentRecord{},
	)
}

// User schema mirrors the accounts Postgres adapter. Deleting a user
// cascades to their addresses, service areas, and inventory.
type userRecord struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Username string `gorm:"column:username;uniqueIndex"`
	Name     string `gorm:"column:name"`
	Phone    string `gorm:"column:phone"`
	Type     string `gorm:"column:user_type;type:varchar(16);check:user_type IN ('customer','vendor')"`
	AreaID   *int64 `gorm:"column:area_id"`

	Addresses []addressRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Areas     []areaRecord    `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	Inventory []itemRecord    `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

func (userRecord) TableName() string { return "users" }

// Address schema mirrors the accounts Postgres adapter.
type addressRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	UserID    int64  `gorm:"column:user_id;index"`
	Label     string `gorm:"column:label"`
	Street    string `gorm:"column:street"`
	City      string `gorm:"column:city"`
	State     string `gorm:"column:state"`
	Zip       string `gorm:"column:zip"`
	IsDefault bool   `gorm:"column:is_default;index"`
	AreaID    *int64 `gorm:"column:area_id"`
}

func (addressRecord) TableName() string { return "addresses" }

// Service area schema mirrors the catalog Postgres adapter. Deleting an
// area detaches the addresses inside it instead of deleting them.
type areaRecord struct {
	ID         int64  `gorm:"primaryKey;column:id"`
	Name       string `gorm:"column:name"`
	VendorID   int64  `gorm:"column:vendor_id;index"`
	VendorName string `gorm:"column:vendor_name"`

	Addresses []addressRecord `gorm:"foreignKey:AreaID;constraint:OnDelete:SET NULL"`
}

func (areaRecord) TableName() string { return "service_areas" }

// Inventory schema mirrors the catalog Postgres adapter.
type itemRecord struct {
	ID          int64          `gorm:"primaryKey;column:id"`
	VendorID    int64          `gorm:"column:vendor_id;index"`
	Name        string         `gorm:"column:name"`
	Price       float64        `gorm:"column:price;type:decimal(10,2);check:price >= 0"`
	Stock       int32          `gorm:"column:stock;check:stock >= 0"`
	Description string         `gorm:"column:description"`
	ImageURLs   pq.StringArray `gorm:"column:image_urls;type:text[]"`
}

func (itemRecord) TableName() string { return "inventory_items" }

// Order schema mirrors the orders Postgres adapter. Customer, vendor,
// area, and address columns are soft references: the order keeps its
// denormalized snapshots when those rows go away, so they carry no
// foreign keys.
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

	Items       []orderItemRecord  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Messages    []messageRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Invoices    []invoiceRecord    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Fulfillment *fulfillmentRecord `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema mirrors the orders Postgres adapter.
type orderItemRecord struct {
	ID       int64   `gorm:"primaryKey;column:id"`
	OrderID  int64   `gorm:"column:order_id;index"`
	ItemID   int64   `gorm:"column:item_id"`
	Name     string  `gorm:"column:name"`
	Quantity int32   `gorm:"column:quantity;check:quantity > 0"`
	Price    float64 `gorm:"column:price;type:decimal(10,2)"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Message schema mirrors the orders Postgres adapter.
type messageRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	OrderID    int64     `gorm:"column:order_id;index"`
	Sender     string    `gorm:"column:sender;type:varchar(16);check:sender IN ('customer','vendor')"`
	SenderName string    `gorm:"column:sender_name"`
	Body       string    `gorm:"column:body"`
	SentAt     time.Time `gorm:"column:sent_at;index"`
}

func (messageRecord) TableName() string { return "order_messages" }

// Invoice schema mirrors the orders Postgres adapter.
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

// Fulfillment marker schema; the unique order_id enforces the single
// delivery decrement per order.
type fulfillmentRecord struct {
	OrderID     int64     `gorm:"primaryKey;column:order_id"`
	RequestID   string    `gorm:"column:request_id;size:64"`
	FulfilledAt time.Time `gorm:"column:fulfilled_at"`
}

func (fulfillmentRecord) TableName() string { return "order_fulfillments" }
