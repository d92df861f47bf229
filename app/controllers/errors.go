package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// fieldErrors maps validation-class service errors onto the request field
// they concern.
var fieldErrors = []struct {
	err   error
	field string
}{
	{services.ErrDuplicateEmail, "email"},
	{services.ErrInvalidCategory, "category"},
	{services.ErrMissingImage, "image"},
	{services.ErrNegativePrice, "price"},
	{services.ErrInvalidPaymentMethod, "payment_method"},
	{services.ErrUnknownUser, "user"},
	{services.ErrUnknownProduct, "product_identifiers"},
	{services.ErrEmptyOrder, "product_identifiers"},
	{services.ErrInvalidSubject, "subject"},
}

// respondError writes the response for a failed service call.
func respondError(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
		return
	case errors.Is(err, services.ErrProductInUse):
		c.Error(http.StatusConflict, err.Error())
		return
	}

	for _, fe := range fieldErrors {
		if errors.Is(err, fe.err) {
			c.ValidationError(map[string]string{fe.field: err.Error()})
			return
		}
	}

	c.ServerError(err)
}
