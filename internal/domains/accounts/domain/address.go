package domain

import (
	"errors"
	"strings"
)

var (
	ErrAddressOwnerMissing = errors.New("address must reference an owner")
	ErrEmptyStreet         = errors.New("street is required")
	ErrEmptyCity           = errors.New("city is required")
)

// Address is a delivery location owned by one user. At most one address
// per user carries the default flag; the repositories enforce that rule
// when a new default is written.
type Address struct {
	ID        int64
	UserID    int64
	Label     string
	Street    string
	City      string
	State     string
	Zip       string
	IsDefault bool
	AreaID    *int64
}

// NewAddress validates and constructs an address.
func NewAddress(userID int64, label, street, city, state, zip string) (*Address, error) {
	addr := &Address{
		UserID: userID,
		Label:  strings.TrimSpace(label),
		State:  strings.TrimSpace(state),
		Zip:    strings.TrimSpace(zip),
	}
	if userID <= 0 {
		return nil, ErrAddressOwnerMissing
	}
	if err := addr.SetStreet(street); err != nil {
		return nil, err
	}
	if err := addr.SetCity(city); err != nil {
		return nil, err
	}
	return addr, nil
}

// SetStreet trims and validates the street line.
func (a *Address) SetStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return ErrEmptyStreet
	}
	a.Street = street
	return nil
}

// SetCity trims and validates the city.
func (a *Address) SetCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyCity
	}
	a.City = city
	return nil
}

// Validate re-applies invariants for persistence.
func (a *Address) Validate() error {
	if a.UserID <= 0 {
		return ErrAddressOwnerMissing
	}
	if err := a.SetStreet(a.Street); err != nil {
		return err
	}
	return a.SetCity(a.City)
}
