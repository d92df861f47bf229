package controllers

import (
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Index handles GET /api/orders.
func (oc *OrderController) Index(c *ctx.Context) {
	caller, _ := c.Identity()
	orders, p, err := oc.orders.List(c.Context(), caller, c.QueryInt("page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(orders, p)
}

// Show handles GET /api/orders/{id}.
func (oc *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	caller, _ := c.Identity()
	o, err := oc.orders.Get(c.Context(), caller, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(o)
}

// Store handles POST /api/orders for the authenticated user.
func (oc *OrderController) Store(c *ctx.Context) {
	var in services.CreateOrderInput
	if !c.BindJSON(&in) {
		return
	}
	caller, _ := c.Identity()
	in.UserID = caller.UserID

	o, err := oc.orders.Create(c.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(o)
}

// Destroy handles DELETE /api/orders/{id}; the route is admin-only.
func (oc *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	if err := oc.orders.Delete(c.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Success(map[string]uint{"id": id})
}

// Statuses handles GET /api/orders/statuses.
func (oc *OrderController) Statuses(c *ctx.Context) {
	c.Success(oc.orders.Statuses())
}
