// Package service implements the entity services for users, car
// parts and projects. Services validate input and check existence
// preconditions before any mutating storage call, translating caller
// mistakes into the domain error taxonomy; only genuine storage
// failures surface as model.ErrStoreUnavailable.
package service

import (
	"errors"
	"fmt"

	"github.com/partsgarage/inventory-api/internal/model"
)

// wrapStore converts an unexpected storage error into the single
// 5xx-class taxonomy value, keeping the original cause in the chain
// for logs. Taxonomy values already assigned by the repository pass
// through untouched.
func wrapStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrDuplicateUser),
		errors.Is(err, model.ErrIntegrity),
		errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrValidation):
		return err
	default:
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
}
