package external

import (
	"context"

	accountsports "github.com/aquaflow/aquaflow-api/internal/domains/accounts/ports"
	"github.com/aquaflow/aquaflow-api/internal/domains/orders/ports"
)

var _ ports.CustomerDirectory = (*CustomerDirectory)(nil)

// CustomerDirectory adapts the accounts service to the slice of customer
// data the order flow denormalizes.
type CustomerDirectory struct {
	accounts accountsports.Service
}

// NewCustomerDirectory wraps the accounts service.
func NewCustomerDirectory(accounts accountsports.Service) *CustomerDirectory {
	return &CustomerDirectory{accounts: accounts}
}

func (d *CustomerDirectory) LookupCustomer(ctx context.Context, id int64) (*ports.CustomerRef, error) {
	user, err := d.accounts.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.CustomerRef{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
	}, nil
}

func (d *CustomerDirectory) LookupAddress(ctx context.Context, id int64) (*ports.AddressRef, error) {
	addr, err := d.accounts.GetAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.AddressRef{
		ID:     addr.ID,
		UserID: addr.UserID,
		AreaID: addr.AreaID,
	}, nil
}
