// Package repositories holds the gorm-backed data access for the storefront.
package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows returned per page by every listing.
const PageSize = 5

// ErrNotFound is returned when a lookup by id or key matches no row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write hits a unique index.
var ErrDuplicate = errors.New("duplicate key")

// translate maps gorm's not-found and duplicate-key errors onto the
// package sentinels and wraps the rest.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
