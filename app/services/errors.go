package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/repositories"
)

var (
	// ErrNotFound is shared with the repositories so either layer's miss
	// matches errors.Is(err, ErrNotFound).
	ErrNotFound = repositories.ErrNotFound

	ErrDuplicateEmail       = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidCategory      = errors.New("category is not valid")
	ErrMissingImage         = errors.New("product image is required")
	ErrNegativePrice        = errors.New("price must not be negative")
	ErrInvalidPaymentMethod = errors.New("payment method is not valid")
	ErrUnknownUser          = errors.New("user does not exist")
	ErrUnknownProduct       = errors.New("product does not exist")
	ErrEmptyOrder           = errors.New("order has no items")
	ErrInvalidSubject       = errors.New("subject is not valid")
	ErrProductInUse         = errors.New("product is referenced by an order")
)

// UnknownProductError names the product id an order referenced that does
// not exist.
type UnknownProductError struct {
	ID uint
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("product %d does not exist", e.ID)
}

func (e *UnknownProductError) Unwrap() error { return ErrUnknownProduct }
