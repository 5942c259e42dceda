package postgres

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/ports"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// areaRecord maps a service area to the service_areas table.
type areaRecord struct {
	ID         int64  `gorm:"primaryKey;column:id"`
	Name       string `gorm:"column:name"`
	VendorID   int64  `gorm:"column:vendor_id;index"`
	VendorName string `gorm:"column:vendor_name"`
}

func (areaRecord) TableName() string { return "service_areas" }

// itemRecord maps an inventory item to the inventory_items table.
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

// SaveArea inserts or updates a service area row.
func (r *Repository) SaveArea(ctx context.Context, area *domain.ServiceArea) (*domain.ServiceArea, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if area == nil {
		return nil, errors.New("area is nil")
	}
	record := toAreaRecord(area)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return r.GetArea(ctx, record.ID)
}

// GetArea fetches a service area by identifier.
func (r *Repository) GetArea(ctx context.Context, id int64) (*domain.ServiceArea, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record areaRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAreaNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// ListAreas returns every zone.
func (r *Repository) ListAreas(ctx context.Context) ([]*domain.ServiceArea, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []areaRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	areas := make([]*domain.ServiceArea, 0, len(records))
	for i := range records {
		areas = append(areas, records[i].toDomain())
	}
	return areas, nil
}

// DeleteArea removes a zone row.
func (r *Repository) DeleteArea(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&areaRecord{}, id)
	if result.Error != nil {
		return platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrAreaNotFound
	}
	return nil
}

// SaveItem inserts or updates an inventory row.
func (r *Repository) SaveItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("item is nil")
	}
	record := toItemRecord(item)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return r.GetItem(ctx, record.ID)
}

// GetItem fetches an inventory item by identifier.
func (r *Repository) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrItemNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// ListItemsByVendor returns the vendor's inventory.
func (r *Repository) ListItemsByVendor(ctx context.Context, vendorID int64) ([]*domain.InventoryItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []itemRecord
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	items := make([]*domain.InventoryItem, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// DeleteItem removes an inventory row.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&itemRecord{}, id)
	if result.Error != nil {
		return platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrItemNotFound
	}
	return nil
}

// DecrementStock subtracts quantity in one statement, clamped at zero, so
// concurrent deliveries cannot lose updates.
func (r *Repository) DecrementStock(ctx context.Context, itemID int64, quantity int32) (int32, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(&itemRecord{}).
		Where("id = ?", itemID).
		Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", quantity))
	if result.Error != nil {
		return 0, platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ports.ErrItemNotFound
	}
	var record itemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", itemID).Error; err != nil {
		return 0, platformpostgres.Classify(err)
	}
	return record.Stock, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toAreaRecord(area *domain.ServiceArea) areaRecord {
	return areaRecord{
		ID:         area.ID,
		Name:       area.Name,
		VendorID:   area.VendorID,
		VendorName: area.VendorName,
	}
}

func (r areaRecord) toDomain() *domain.ServiceArea {
	return &domain.ServiceArea{
		ID:         r.ID,
		Name:       r.Name,
		VendorID:   r.VendorID,
		VendorName: r.VendorName,
	}
}

func toItemRecord(item *domain.InventoryItem) itemRecord {
	return itemRecord{
		ID:          item.ID,
		VendorID:    item.VendorID,
		Name:        item.Name,
		Price:       item.Price,
		Stock:       item.Stock,
		Description: item.Description,
		ImageURLs:   pq.StringArray(item.ImageURLs),
	}
}

func (r itemRecord) toDomain() *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:          r.ID,
		VendorID:    r.VendorID,
		Name:        r.Name,
		Price:       r.Price,
		Stock:       r.Stock,
		Description: r.Description,
		ImageURLs:   []string(r.ImageURLs),
	}
}
