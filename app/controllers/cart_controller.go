package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Show handles GET /api/cart?productIdentifiers=3-3-5.
func (cc *CartController) Show(c *ctx.Context) {
	cart, err := cc.cart.Price(c.Context(), c.Query("productIdentifiers"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(cart)
}

// PaymentMethods handles GET /api/cart/paymentmethods.
func (cc *CartController) PaymentMethods(c *ctx.Context) {
	c.Success(cc.cart.PaymentMethods())
}
