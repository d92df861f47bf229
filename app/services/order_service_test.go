package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(u models.User) auth.Identity {
	return auth.Identity{UserID: u.ID, Role: u.Role.String()}
}

func TestCreateOrderErrorsInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	u := f.user(t, "c@x.io", models.RoleClient)
	p := f.product(t, "A", "1")

	_, err := svc.Create(ctx, CreateOrderInput{UserID: 999, PaymentMethod: "Bitcoin", ProductIdentifiers: "1"})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = svc.Create(ctx, CreateOrderInput{UserID: 999, PaymentMethod: "Cash", ProductIdentifiers: "1"})
	assert.ErrorIs(t, err, ErrUnknownUser)

	_, err = svc.Create(ctx, CreateOrderInput{UserID: u.ID, PaymentMethod: "Cash", ProductIdentifiers: fmt.Sprintf("%d-77", p.ID)})
	var unknown *UnknownProductError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint(77), unknown.ID)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.Create(ctx, CreateOrderInput{UserID: u.ID, PaymentMethod: "Cash", ProductIdentifiers: "0"})
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, uint(0), unknown.ID)
	assert.NotErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(ctx, CreateOrderInput{UserID: u.ID, PaymentMethod: "Cash", ProductIdentifiers: "x-y"})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	var orders, items int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, f.db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	u := f.user(t, "c@x.io", models.RoleClient)
	a := f.product(t, "A", "4.00")
	b := f.product(t, "B", "1.50")

	o, err := svc.Create(ctx, CreateOrderInput{
		UserID: u.ID, DeliveryAddress: " 1 Road ", PaymentMethod: "Paypal",
		ProductIdentifiers: fmt.Sprintf("%d-%d-%d", b.ID, a.ID, b.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", o.PaymentStatus)
	assert.Equal(t, "Created", o.OrderStatus)
	assert.Equal(t, "1 Road", o.DeliveryAddress)
	assert.True(t, decimal.NewFromInt(5).Equal(o.ShippingFee))
	require.Len(t, o.Items, 2)
	assert.Equal(t, a.ID, o.Items[0].ProductID)
	assert.Equal(t, 2, o.Items[1].Quantity)
	assert.True(t, decimal.RequireFromString("7").Equal(o.SubTotal()))
	assert.Contains(t, f.events.events, EventOrderCreated)

	a.Price = decimal.NewFromInt(100)
	require.NoError(t, f.products.Save(ctx, &a))

	got, err := svc.Get(ctx, identity(u), o.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(got.Items[0].UnitPrice))
}

func TestOrderVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	alice := f.user(t, "alice@x.io", models.RoleClient)
	bob := f.user(t, "bob@x.io", models.RoleClient)
	admin := f.user(t, "admin@x.io", models.RoleAdmin)
	p := f.product(t, "A", "1")

	o, err := svc.Create(ctx, CreateOrderInput{UserID: alice.ID, DeliveryAddress: "x", PaymentMethod: "Cash", ProductIdentifiers: fmt.Sprint(p.ID)})
	require.NoError(t, err)

	_, errOther := svc.Get(ctx, identity(bob), o.ID)
	_, errMissing := svc.Get(ctx, identity(bob), 4242)
	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.Equal(t, errMissing, errOther)

	got, err := svc.Get(ctx, identity(admin), o.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.UserID)

	list, _, err := svc.List(ctx, identity(bob), 1)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, pg, err := svc.List(ctx, identity(admin), 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, pg.Page)

	list, _, err = svc.List(ctx, auth.Identity{}, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListedOrdersSerializeWithoutCyclesOrPasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	u := f.user(t, "c@x.io", models.RoleClient)
	p := f.product(t, "A", "1")
	_, err := svc.Create(ctx, CreateOrderInput{UserID: u.ID, DeliveryAddress: "x", PaymentMethod: "Cash", ProductIdentifiers: fmt.Sprint(p.ID)})
	require.NoError(t, err)

	list, _, err := svc.List(ctx, identity(u), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Empty(t, list[0].User.Password)

	raw, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"order_id"`)
	assert.NotContains(t, string(raw), `"password"`)
}

func TestOrderListNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	u := f.user(t, "c@x.io", models.RoleClient)
	p := f.product(t, "A", "1")
	for i := 0; i < 7; i++ {
		_, err := svc.Create(ctx, CreateOrderInput{UserID: u.ID, DeliveryAddress: "x", PaymentMethod: "Cash", ProductIdentifiers: fmt.Sprint(p.ID)})
		require.NoError(t, err)
	}

	first, pg, err := svc.List(ctx, identity(u), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, pg.TotalPages)
	require.Len(t, first, 5)
	assert.Greater(t, first[0].ID, first[4].ID)

	second, _, err := svc.List(ctx, identity(u), 2)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.orderService()
	u := f.user(t, "c@x.io", models.RoleClient)
	p := f.product(t, "A", "1")
	o, err := svc.Create(ctx, CreateOrderInput{UserID: u.ID, DeliveryAddress: "x", PaymentMethod: "Cash", ProductIdentifiers: fmt.Sprint(p.ID)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, o.ID))
	assert.ErrorIs(t, svc.Delete(ctx, o.ID), ErrNotFound)
}

func TestStatuses(t *testing.T) {
	st := newFixture(t).orderService().Statuses()
	assert.Equal(t, "Pending", st.PaymentStatuses[0])
	assert.Equal(t, []string{"Created", "Accepted", "Canceled", "Shipped", "Delivered", "Returned"}, st.OrderStatuses)
}
