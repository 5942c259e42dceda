package ports

import (
	"context"
	"errors"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAddressNotFound = errors.New("address not found")
)

// Repository persists accounts and their addresses.
type Repository interface {
	SaveUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// SaveAddress inserts or updates an address. When the address carries
	// the default flag, every other address of the same owner loses it in
	// the same storage transaction.
	SaveAddress(ctx context.Context, addr *domain.Address) (*domain.Address, error)
	GetAddress(ctx context.Context, id int64) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]*domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}
