package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	platformpostgres "github.com/aquaflow/aquaflow-api/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// userRecord maps the account aggregate to the users table.
type userRecord struct {
	ID       int64  `gorm:"primaryKey;column:id"`
	Username string `gorm:"column:username;uniqueIndex"`
	Name     string `gorm:"column:name"`
	Phone    string `gorm:"column:phone"`
	Type     string `gorm:"column:user_type;type:varchar(16);check:user_type IN ('customer','vendor')"`
	AreaID   *int64 `gorm:"column:area_id"`
}

func (userRecord) TableName() string { return "users" }

// addressRecord maps an address to the addresses table.
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

// SaveUser inserts or updates an account row.
func (r *Repository) SaveUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toUserRecord(user)
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return r.GetUser(ctx, record.ID)
}

// GetUser fetches an account by identifier.
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// FindUserByUsername resolves the identity-boundary lookup.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrUserNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// DeleteUser removes an account; the FK cascade removes its addresses and
// inventory rows.
func (r *Repository) DeleteUser(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&userRecord{}, id)
	if result.Error != nil {
		return platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrUserNotFound
	}
	return nil
}

// SaveAddress writes the address; when it carries the default flag the
// owner's other defaults are cleared in the same transaction.
func (r *Repository) SaveAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, errors.New("address is nil")
	}
	record := toAddressRecord(addr)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.IsDefault {
			if err := tx.Model(&addressRecord{}).
				Where("user_id = ? AND id <> ?", record.UserID, record.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, platformpostgres.Classify(err)
	}
	return r.GetAddress(ctx, record.ID)
}

// GetAddress fetches an address by identifier.
func (r *Repository) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record addressRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrAddressNotFound
		}
		return nil, platformpostgres.Classify(err)
	}
	return record.toDomain(), nil
}

// ListAddresses returns the owner's addresses, default flag first.
func (r *Repository) ListAddresses(ctx context.Context, userID int64) ([]*domain.Address, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []addressRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, id ASC").
		Find(&records).Error; err != nil {
		return nil, platformpostgres.Classify(err)
	}
	addrs := make([]*domain.Address, 0, len(records))
	for i := range records {
		addrs = append(addrs, records[i].toDomain())
	}
	return addrs, nil
}

// DeleteAddress removes a single address row.
func (r *Repository) DeleteAddress(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&addressRecord{}, id)
	if result.Error != nil {
		return platformpostgres.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return ports.ErrAddressNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres accounts repository not configured")
	}
	return nil
}

func toUserRecord(user *domain.User) userRecord {
	return userRecord{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Phone:    user.Phone,
		Type:     string(user.Type),
		AreaID:   user.AreaID,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Username: r.Username,
		Name:     r.Name,
		Phone:    r.Phone,
		Type:     domain.UserType(r.Type),
		AreaID:   r.AreaID,
	}
}

func toAddressRecord(addr *domain.Address) addressRecord {
	return addressRecord{
		ID:        addr.ID,
		UserID:    addr.UserID,
		Label:     addr.Label,
		Street:    addr.Street,
		City:      addr.City,
		State:     addr.State,
		Zip:       addr.Zip,
		IsDefault: addr.IsDefault,
		AreaID:    addr.AreaID,
	}
}

func (r addressRecord) toDomain() *domain.Address {
	return &domain.Address{
		ID:        r.ID,
		UserID:    r.UserID,
		Label:     r.Label,
		Street:    r.Street,
		City:      r.City,
		State:     r.State,
		Zip:       r.Zip,
		IsDefault: r.IsDefault,
		AreaID:    r.AreaID,
	}
}
