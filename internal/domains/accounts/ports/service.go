package ports

import (
	"context"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
)

// Service exposes the accounts use cases to transport adapters.
type Service interface {
	CreateUser(ctx context.Context, input types.CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ResolveByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, input types.UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateAddress(ctx context.Context, input types.CreateAddressInput) (*domain.Address, error)
	GetAddress(ctx context.Context, id int64) (*domain.Address, error)
	ListAddresses(ctx context.Context, userID int64) ([]*domain.Address, error)
	UpdateAddress(ctx context.Context, input types.UpdateAddressInput) (*domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}
