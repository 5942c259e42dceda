package application

import (
	"context"
	"strings"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/application/types"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
)

// Service orchestrates the accounts bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the accounts service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a new account. Duplicate usernames surface as the
// storage layer's uniqueness violation, not a friendly pre-check.
func (s *Service) CreateUser(ctx context.Context, input types.CreateUserInput) (*domain.User, error) {
	user, err := domain.NewUser(0, input.Username, input.Name, domain.UserType(input.Type))
	if err != nil {
		return nil, mapError(err)
	}
	user.UpdatePhone(input.Phone)
	user.AssignArea(input.AreaID)
	saved, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetUser loads a single account.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// ResolveByEmail maps an authenticated email to the account row using the
// local-part convention of the identity boundary.
func (s *Service) ResolveByEmail(ctx context.Context, email string) (*domain.User, error) {
	username := domain.LocalPart(email)
	if strings.TrimSpace(username) == "" {
		return nil, mapError(domain.ErrEmptyUsername)
	}
	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// UpdateUser applies the fields present in the patch and persists the
// result. The account type never changes.
func (s *Service) UpdateUser(ctx context.Context, input types.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Name != nil {
		if err := user.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Phone != nil {
		user.UpdatePhone(*input.Phone)
	}
	if input.AreaID.Set {
		user.AssignArea(input.AreaID.ID)
	}
	saved, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteUser removes the account; dependent addresses and inventory go
// with it through the storage cascade rules.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return mapError(s.repo.DeleteUser(ctx, id))
}

// CreateAddress stores a new delivery address. A true default flag clears
// the owner's other defaults inside the repository transaction.
func (s *Service) CreateAddress(ctx context.Context, input types.CreateAddressInput) (*domain.Address, error) {
	addr, err := domain.NewAddress(input.UserID, input.Label, input.Street, input.City, input.State, input.Zip)
	if err != nil {
		return nil, mapError(err)
	}
	addr.IsDefault = input.IsDefault
	addr.AreaID = input.AreaID
	saved, err := s.repo.SaveAddress(ctx, addr)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetAddress loads a single address.
func (s *Service) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	addr, err := s.repo.GetAddress(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return addr, nil
}

// ListAddresses returns the owner's addresses, default flag first.
func (s *Service) ListAddresses(ctx context.Context, userID int64) ([]*domain.Address, error) {
	list, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return list, nil
}

// UpdateAddress applies the fields present in the patch.
func (s *Service) UpdateAddress(ctx context.Context, input types.UpdateAddressInput) (*domain.Address, error) {
	addr, err := s.repo.GetAddress(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.Label != nil {
		addr.Label = strings.TrimSpace(*input.Label)
	}
	if input.Street != nil {
		if err := addr.SetStreet(*input.Street); err != nil {
			return nil, mapError(err)
		}
	}
	if input.City != nil {
		if err := addr.SetCity(*input.City); err != nil {
			return nil, mapError(err)
		}
	}
	if input.State != nil {
		addr.State = strings.TrimSpace(*input.State)
	}
	if input.Zip != nil {
		addr.Zip = strings.TrimSpace(*input.Zip)
	}
	if input.IsDefault != nil {
		addr.IsDefault = *input.IsDefault
	}
	if input.AreaID.Set {
		addr.AreaID = input.AreaID.ID
	}
	saved, err := s.repo.SaveAddress(ctx, addr)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteAddress removes a single address by identifier.
func (s *Service) DeleteAddress(ctx context.Context, id int64) error {
	return mapError(s.repo.DeleteAddress(ctx, id))
}

var _ ports.Service = (*Service)(nil)
