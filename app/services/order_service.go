package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shopspring/decimal"
)

// OrderStore is the order repository as seen by the services.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context, s repositories.OrderScope, page int) ([]models.Order, orm.Pagination, error)
	Find(ctx context.Context, s repositories.OrderScope, id uint) (models.Order, error)
	Delete(ctx context.Context, id uint) error
}

type CreateOrderInput struct {
	UserID             uint   `json:"-"`
	DeliveryAddress    string `json:"delivery_address"    validate:"required,max=255"`
	PaymentMethod      string `json:"payment_method"      validate:"required"`
	ProductIdentifiers string `json:"product_identifiers" validate:"max=2000"`
}

// OrderStatuses lists the status progressions; the first entry of each is
// the status new orders start in.
type OrderStatuses struct {
	PaymentStatuses []string `json:"payment_statuses"`
	OrderStatuses   []string `json:"order_statuses"`
}

type OrderService struct {
	orders      OrderStore
	users       UserStore
	products    ProductStore
	events      Publisher
	catalog     models.Catalog
	shippingFee decimal.Decimal
}

func NewOrderService(orders OrderStore, users UserStore, products ProductStore, events Publisher, catalog models.Catalog, shippingFee decimal.Decimal) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		products:    products,
		events:      publisherOrNop(events),
		catalog:     catalog,
		shippingFee: shippingFee,
	}
}

// Create places an order. Every referenced product must exist; nothing is
// written unless the whole order is valid.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	if !s.catalog.ValidPaymentMethod(in.PaymentMethod) {
		return models.Order{}, ErrInvalidPaymentMethod
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if errors.Is(err, ErrNotFound) {
		return models.Order{}, ErrUnknownUser
	}
	if err != nil {
		return models.Order{}, err
	}

	quantities := ParseProductIdentifiers(in.ProductIdentifiers)
	ids := collection.SortedKeys(quantities)
	products, err := s.products.FindMany(ctx, ids)
	if err != nil {
		return models.Order{}, err
	}
	byID := collection.KeyBy(products, func(p models.Product) uint { return p.ID })

	items := make([]models.OrderItem, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return models.Order{}, &UnknownProductError{ID: id}
		}
		items = append(items, models.OrderItem{ProductID: id, Quantity: quantities[id], UnitPrice: p.Price})
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	order := models.Order{
		UserID:          user.ID,
		ShippingFee:     s.shippingFee,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   s.catalog.InitialPaymentStatus(),
		OrderStatus:     s.catalog.InitialOrderStatus(),
		Items:           items,
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, err
	}

	order.User = user.Sanitize()
	for i := range order.Items {
		p := byID[order.Items[i].ProductID]
		order.Items[i].Product = &p
	}

	s.events.Fire(ctx, EventOrderCreated, OrderCreated{Order: order})
	return order, nil
}

// List returns one page of the orders the caller may see: all of them for
// admins, otherwise only the caller's own.
func (s *OrderService) List(ctx context.Context, caller auth.Identity, page int) ([]models.Order, orm.Pagination, error) {
	orders, p, err := s.orders.List(ctx, scopeFor(caller), page)
	if err != nil {
		return nil, orm.Pagination{}, err
	}
	for i := range orders {
		orders[i].Sanitize()
	}
	return orders, p, nil
}

// Get returns order id. Another user's order looks exactly like a missing
// one to non-admins.
func (s *OrderService) Get(ctx context.Context, caller auth.Identity, id uint) (models.Order, error) {
	o, err := s.orders.Find(ctx, scopeFor(caller), id)
	if err != nil {
		return models.Order{}, err
	}
	return *o.Sanitize(), nil
}

// Delete removes order id and its items. Callers gate it to admins.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) Statuses() OrderStatuses {
	return OrderStatuses{
		PaymentStatuses: append([]string(nil), s.catalog.PaymentStatuses...),
		OrderStatuses:   append([]string(nil), s.catalog.OrderStatuses...),
	}
}

func scopeFor(caller auth.Identity) repositories.OrderScope {
	role, _ := models.ParseRole(caller.Role)
	return repositories.OrderScope{All: role.IsAdmin(), OwnerID: caller.UserID}
}
