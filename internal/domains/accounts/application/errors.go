package application

import (
	"errors"
	"fmt"

	"github.com/aquaflow/aquaflow-api/internal/domains/accounts/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid account input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUsername) ||
		errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidUserType) ||
		errors.Is(err, domain.ErrAddressOwnerMissing) ||
		errors.Is(err, domain.ErrEmptyStreet) ||
		errors.Is(err, domain.ErrEmptyCity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
