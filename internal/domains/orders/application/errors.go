package application

import (
	"errors"
	"fmt"

	"github.com/aquaflow/aquaflow-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrMissingCustomer) ||
		errors.Is(err, domain.ErrMissingVendor) ||
		errors.Is(err, domain.ErrMissingAddress) ||
		errors.Is(err, domain.ErrInvalidSender) ||
		errors.Is(err, domain.ErrEmptyMessage) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
