package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
)

// Event names fired by the services.
const (
	EventUserRegistered = "user.registered"
	EventProductSaved   = "product.saved"
	EventProductDeleted = "product.deleted"
	EventOrderCreated   = "order.created"
)

// Publisher is satisfied by *event.Dispatcher.
type Publisher interface {
	Fire(ctx context.Context, event string, payload interface{})
}

type UserRegistered struct{ User models.User }

type ProductSaved struct{ Product models.Product }

type ProductDeleted struct{ Product models.Product }

type OrderCreated struct{ Order models.Order }

type nopPublisher struct{}

func (nopPublisher) Fire(context.Context, string, interface{}) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
