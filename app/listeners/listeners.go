// Package listeners reacts to the domain events fired by the services.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// ProductCache drops cached product lookups.
type ProductCache interface {
	Forget(id uint) error
}

// Register subscribes the storefront listeners on d.
func Register(d *event.Dispatcher, products ProductCache) {
	d.Listen(services.EventUserRegistered, func(ctx context.Context, payload interface{}) {
		e, ok := payload.(services.UserRegistered)
		if !ok {
			return
		}
		metrics.UsersRegistered.Inc()
		logger.WithCtx(ctx).Info("user registered", "user_id", e.User.ID)
	})

	forget := func(ctx context.Context, id uint) {
		if err := products.Forget(id); err != nil {
			logger.WithCtx(ctx).Warn("product cache invalidation failed", "product_id", id, "error", err)
		}
	}

	d.Listen(services.EventProductSaved, func(ctx context.Context, payload interface{}) {
		if e, ok := payload.(services.ProductSaved); ok {
			forget(ctx, e.Product.ID)
		}
	})

	d.Listen(services.EventProductDeleted, func(ctx context.Context, payload interface{}) {
		if e, ok := payload.(services.ProductDeleted); ok {
			forget(ctx, e.Product.ID)
			logger.WithCtx(ctx).Info("product deleted", "product_id", e.Product.ID)
		}
	})

	d.Listen(services.EventOrderCreated, func(ctx context.Context, payload interface{}) {
		e, ok := payload.(services.OrderCreated)
		if !ok {
			return
		}
		metrics.OrdersCreated.WithLabelValues(e.Order.PaymentMethod).Inc()
		logger.WithCtx(ctx).Info("order created",
			"order_id", e.Order.ID,
			"user_id", e.Order.UserID,
			"items", len(e.Order.Items),
		)
	})
}
