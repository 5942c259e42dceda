package application

import (
	"errors"
	"fmt"

	"github.com/aquaflow/aquaflow-api/internal/domains/catalog/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyAreaName) ||
		errors.Is(err, domain.ErrMissingVendor) ||
		errors.Is(err, domain.ErrEmptyItemName) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrMissingOwner) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
