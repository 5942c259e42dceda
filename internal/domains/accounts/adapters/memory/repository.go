package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
)

var _ ports.Repository = (*Repository)(nil)

// ErrDuplicateUsername mirrors the storage uniqueness constraint.
var ErrDuplicateUsername = errors.New("username already taken")

// Repository is an in-memory accounts persistence adapter.
type Repository struct {
	mu          sync.RWMutex
	users       map[int64]*domain.User
	addresses   map[int64]*domain.Address
	nextUserID  int64
	nextAddrID  int64
}

func NewRepository() *Repository {
	return &Repository{
		users:     map[int64]*domain.User{},
		addresses: map[int64]*domain.Address{},
	}
}

func (r *Repository) SaveUser(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if existing.Username == clone.Username && id != clone.ID {
			return nil, ErrDuplicateUsername
		}
	}
	if clone.ID == 0 {
		r.nextUserID++
		clone.ID = r.nextUserID
	} else if clone.ID > r.nextUserID {
		r.nextUserID = clone.ID
	}
	r.users[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetUser(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (r *Repository) DeleteUser(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ports.ErrUserNotFound
	}
	delete(r.users, id)
	// Cascade mirrors the relational FK rules.
	for addrID, addr := range r.addresses {
		if addr.UserID == id {
			delete(r.addresses, addrID)
		}
	}
	return nil
}

func (r *Repository) SaveAddress(_ context.Context, addr *domain.Address) (*domain.Address, error) {
	if addr == nil {
		return nil, errors.New("address is nil")
	}
	clone := *addr
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextAddrID++
		clone.ID = r.nextAddrID
	} else if clone.ID > r.nextAddrID {
		r.nextAddrID = clone.ID
	}
	if clone.IsDefault {
		for _, other := range r.addresses {
			if other.UserID == clone.UserID && other.ID != clone.ID {
				other.IsDefault = false
			}
		}
	}
	r.addresses[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *Repository) GetAddress(_ context.Context, id int64) (*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.addresses[id]
	if !ok {
		return nil, ports.ErrAddressNotFound
	}
	clone := *addr
	return &clone, nil
}

func (r *Repository) ListAddresses(_ context.Context, userID int64) ([]*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Address, 0)
	for _, addr := range r.addresses {
		if addr.UserID == userID {
			clone := *addr
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *Repository) DeleteAddress(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[id]; !ok {
		return ports.ErrAddressNotFound
	}
	delete(r.addresses, id)
	return nil
}
