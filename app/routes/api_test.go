package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/providers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type api struct {
	t    *testing.T
	h    http.Handler
	sf   *providers.Storefront
	root string
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db := testkit.DB(t, &models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Contact{})
	root := t.TempDir()
	disk := storage.NewLocalDisk(root, "http://localhost/storage")

	sf, err := providers.New(db, disk, event.NewDispatcher(), providers.Settings{
		JWT: config.JWTSettings{
			Key:      "test-signing-key-0123456789abcdef",
			Issuer:   "storefront",
			Audience: "storefront-clients",
			TTL:      time.Hour,
		},
		Store: config.StoreSettings{ShippingFee: "5", CatalogAdminOnly: true},
	})
	require.NoError(t, err)

	r := router.New()
	require.NoError(t, sf.Routes(r))
	return &api{t: t, h: r.Handler(), sf: sf, root: root}
}

func (a *api) do(req testkit.Request) *httptest.ResponseRecorder {
	a.t.Helper()
	return testkit.Do(a.t, a.h, req)
}

// signup registers an account and returns a fresh login token. Admins are
// promoted before logging in so the token carries the role.
func (a *api) signup(email string, admin bool) string {
	a.t.Helper()

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/register", Body: map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "email": email,
		"address": "1 Analytical St", "password": "secret123",
	}})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	if admin {
		require.NoError(a.t, a.sf.Users.SetRole(context.Background(), email, models.RoleAdmin))
	}

	rec = a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/login", Body: map[string]string{
		"email": email, "password": "secret123",
	}})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	testkit.Decode(a.t, rec, &res)
	return res.Token
}

func productForm(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, http.Header) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "Photo.PNG")
		require.NoError(t, err)
		fw.Write([]byte("\x89PNG fake"))
	}
	require.NoError(t, w.Close())
	return &buf, http.Header{"Content-Type": {w.FormDataContentType()}}
}

type productJSON struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	ImageFileName string          `json:"image_file_name"`
	ImageURL      string          `json:"image_url"`
}

func (a *api) createProduct(token, name, price string) productJSON {
	a.t.Helper()

	body, hdr := productForm(a.t, map[string]string{
		"name": name, "brand": "Acme", "category": "Phones", "price": price, "description": "A phone",
	}, true)
	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/products", Body: body, Header: hdr, Token: token})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var p productJSON
	testkit.Decode(a.t, rec, &p)
	return p
}

func TestAccountFlow(t *testing.T) {
	a := newAPI(t)
	token := a.signup("ada@example.com", false)
	require.NotEmpty(t, token)

	rec := a.do(testkit.Request{Method: http.MethodGet, Path: "/api/account/profile", Token: token})
	require.Equal(t, http.StatusOK, rec.Code)
	var user map[string]interface{}
	testkit.Decode(t, rec, &user)
	assert.Equal(t, "ada@example.com", user["email"])
	assert.Equal(t, "client", user["role"])
	assert.NotContains(t, user, "password")

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/account/profile"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/account/profile", Token: "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsDuplicateAndInvalid(t *testing.T) {
	a := newAPI(t)
	a.signup("ada@example.com", false)

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/register", Body: map[string]string{
		"first_name": "A", "last_name": "B", "email": "ada@example.com", "address": "x", "password": "secret123",
	}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	env := testkit.Decode(t, rec, nil)
	assert.Contains(t, env.Errors, "email")

	rec = a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/register", Body: map[string]string{
		"email": "nope",
	}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/register", Body: bytes.NewBufferString("{")})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	a := newAPI(t)
	a.signup("ada@example.com", false)

	wrongPass := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/login", Body: map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}})
	unknown := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/account/login", Body: map[string]string{
		"email": "nobody@example.com", "password": "wrong-password",
	}})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestProductWritesRequireAdmin(t *testing.T) {
	a := newAPI(t)
	client := a.signup("client@example.com", false)

	body, hdr := productForm(t, map[string]string{"name": "X", "brand": "Y", "category": "Phones", "price": "1"}, true)
	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/products", Body: body, Header: hdr})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	body, hdr = productForm(t, map[string]string{"name": "X", "brand": "Y", "category": "Phones", "price": "1"}, true)
	rec = a.do(testkit.Request{Method: http.MethodPost, Path: "/api/products", Body: body, Header: hdr, Token: client})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProductLifecycle(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)

	p := a.createProduct(admin, "Pixel", "499.999")
	assert.True(t, decimal.RequireFromString("500").Equal(p.Price), p.Price.String())
	assert.Regexp(t, `^[0-9a-f-]{36}\.png$`, p.ImageFileName)
	assert.Equal(t, "http://localhost/storage/images/products/"+p.ImageFileName, p.ImageURL)
	_, err := os.Stat(filepath.Join(a.root, services.ProductImageDir, p.ImageFileName))
	require.NoError(t, err)

	rec := a.do(testkit.Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/products/%d", p.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	// Update without an image keeps the stored file.
	body, hdr := productForm(t, map[string]string{"name": "Pixel 2", "brand": "Acme", "category": "Phones", "price": "10"}, false)
	rec = a.do(testkit.Request{Method: http.MethodPut, Path: fmt.Sprintf("/api/products/%d", p.ID), Body: body, Header: hdr, Token: admin})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated productJSON
	testkit.Decode(t, rec, &updated)
	assert.Equal(t, "Pixel 2", updated.Name)
	assert.Equal(t, p.ImageFileName, updated.ImageFileName)

	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/products/%d", p.ID), Token: admin})
	require.Equal(t, http.StatusOK, rec.Code)
	_, err = os.Stat(filepath.Join(a.root, services.ProductImageDir, p.ImageFileName))
	assert.True(t, os.IsNotExist(err))

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/products/%d", p.ID)})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductValidation(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)

	cases := map[string]struct {
		fields    map[string]string
		withImage bool
		field     string
	}{
		"bad category":  {map[string]string{"name": "X", "brand": "Y", "category": "Boats", "price": "1"}, true, "category"},
		"negative":      {map[string]string{"name": "X", "brand": "Y", "category": "Phones", "price": "-1"}, true, "price"},
		"non numeric":   {map[string]string{"name": "X", "brand": "Y", "category": "Phones", "price": "abc"}, true, "price"},
		"missing image": {map[string]string{"name": "X", "brand": "Y", "category": "Phones", "price": "1"}, false, "image"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body, hdr := productForm(t, tc.fields, tc.withImage)
			rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/products", Body: body, Header: hdr, Token: admin})
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			env := testkit.Decode(t, rec, nil)
			assert.Contains(t, env.Errors, tc.field)
		})
	}
}

func TestProductListing(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)
	for i := 1; i <= 7; i++ {
		a.createProduct(admin, fmt.Sprintf("Phone %d", i), fmt.Sprint(i*10))
	}

	rec := a.do(testkit.Request{Method: http.MethodGet, Path: "/api/products?sort=price&order=asc&minPrice=20&maxPrice=60"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items      []productJSON   `json:"items"`
		Pagination orm.Pagination `json:"pagination"`
	}
	testkit.Decode(t, rec, &page)
	assert.EqualValues(t, 5, page.Pagination.Total)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "Phone 2", page.Items[0].Name)

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/products?page=2"})
	testkit.Decode(t, rec, &page)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/products?minPrice=cheap"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCartPricing(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)
	p1 := a.createProduct(admin, "A", "10")
	p2 := a.createProduct(admin, "B", "2.50")

	rec := a.do(testkit.Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/cart?productIdentifiers=%d-%d-%d-999-x", p1.ID, p2.ID, p1.ID)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cart struct {
		Items []struct {
			Product  productJSON `json:"product"`
			Quantity int         `json:"quantity"`
		} `json:"cart_items"`
		SubTotal   decimal.Decimal `json:"sub_total"`
		TotalPrice decimal.Decimal `json:"total_price"`
	}
	testkit.Decode(t, rec, &cart)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("22.5").Equal(cart.SubTotal))
	assert.True(t, decimal.RequireFromString("27.5").Equal(cart.TotalPrice))

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/cart/paymentmethods"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderAccessControl(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)
	alice := a.signup("alice@example.com", false)
	bob := a.signup("bob@example.com", false)
	p := a.createProduct(admin, "A", "10")

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/orders", Token: alice, Body: map[string]string{
		"delivery_address": "1 Main St", "payment_method": "Cash",
		"product_identifiers": fmt.Sprintf("%d-%d", p.ID, p.ID),
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order models.Order
	testkit.Decode(t, rec, &order)
	assert.Equal(t, "Pending", order.PaymentStatus)
	assert.Equal(t, "Created", order.OrderStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	orderPath := fmt.Sprintf("/api/orders/%d", order.ID)

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: orderPath, Token: alice})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodGet, Path: orderPath, Token: bob})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodGet, Path: orderPath, Token: admin})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodGet, Path: orderPath})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var page struct {
		Items []models.Order `json:"items"`
	}
	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/orders", Token: bob})
	testkit.Decode(t, rec, &page)
	assert.Empty(t, page.Items)

	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: orderPath, Token: alice})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: orderPath, Token: admin})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: orderPath, Token: admin})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderValidation(t *testing.T) {
	a := newAPI(t)
	alice := a.signup("alice@example.com", false)

	cases := map[string]struct {
		body  map[string]string
		field string
	}{
		"payment method": {map[string]string{"delivery_address": "x", "payment_method": "Barter", "product_identifiers": "1"}, "payment_method"},
		"unknown product": {map[string]string{"delivery_address": "x", "payment_method": "Cash", "product_identifiers": "42"}, "product_identifiers"},
		"empty":           {map[string]string{"delivery_address": "x", "payment_method": "Cash", "product_identifiers": ""}, "product_identifiers"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/orders", Token: alice, Body: tc.body})
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			env := testkit.Decode(t, rec, nil)
			assert.Contains(t, env.Errors, tc.field)
		})
	}
}

func TestContactInbox(t *testing.T) {
	a := newAPI(t)

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/contacts", Body: map[string]string{
		"first_name": "Ada", "last_name": "L", "email": "ada@example.com",
		"subject": "Other", "message": "Hello there",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c models.Contact
	testkit.Decode(t, rec, &c)

	rec = a.do(testkit.Request{Method: http.MethodPost, Path: "/api/contacts", Body: map[string]string{
		"first_name": "Ada", "last_name": "L", "email": "ada@example.com",
		"subject": "Complaint", "message": "Hello there",
	}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, testkit.Decode(t, rec, nil).Errors, "subject")

	path := fmt.Sprintf("/api/contacts/%d", c.ID)
	rec = a.do(testkit.Request{Method: http.MethodPut, Path: path, Body: map[string]string{
		"first_name": "Ada", "last_name": "L", "email": "ada@example.com",
		"subject": "Refund Requested", "message": "Refund please",
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	testkit.Decode(t, rec, &c)
	assert.Equal(t, "Refund Requested", c.Subject)

	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: path})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: path})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(testkit.Request{Method: http.MethodGet, Path: "/api/contacts/abc"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogGraphQL(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)
	a.createProduct(admin, "Pixel", "499")

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/graphql", Body: map[string]interface{}{
		"query": `{ products(category: "Phones") { total items { name price } } categories }`,
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Data struct {
			Products struct {
				Total int `json:"total"`
				Items []struct {
					Name  string  `json:"name"`
					Price float64 `json:"price"`
				} `json:"items"`
			} `json:"products"`
			Categories []string `json:"categories"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out.Errors)
	assert.Equal(t, 1, out.Data.Products.Total)
	assert.Equal(t, "Pixel", out.Data.Products.Items[0].Name)
	assert.Equal(t, 499.0, out.Data.Products.Items[0].Price)
	assert.Contains(t, out.Data.Categories, "Phones")
}

func TestDeletingOrderedProductConflicts(t *testing.T) {
	a := newAPI(t)
	admin := a.signup("admin@example.com", true)
	alice := a.signup("alice@example.com", false)
	p := a.createProduct(admin, "A", "10")

	rec := a.do(testkit.Request{Method: http.MethodPost, Path: "/api/orders", Token: alice, Body: map[string]string{
		"delivery_address": "1 Main St", "payment_method": "Cash", "product_identifiers": fmt.Sprint(p.ID),
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(testkit.Request{Method: http.MethodDelete, Path: fmt.Sprintf("/api/products/%d", p.ID), Token: admin})
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, err := os.Stat(filepath.Join(a.root, services.ProductImageDir, p.ImageFileName))
	assert.NoError(t, err)
	rec = a.do(testkit.Request{Method: http.MethodGet, Path: fmt.Sprintf("/api/products/%d", p.ID)})
	assert.Equal(t, http.StatusOK, rec.Code)
}
