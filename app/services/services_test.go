package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeImages struct {
	mu        sync.Mutex
	files     map[string][]byte
	seq       int
	deleteErr error
}

func newFakeImages() *fakeImages { return &fakeImages{files: map[string][]byte{}} }

func (f *fakeImages) Store(_ context.Context, content []byte, ext string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	name := fmt.Sprintf("img-%d%s", f.seq, ext)
	f.files[name] = content
	return name, nil
}

func (f *fakeImages) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, name)
	return nil
}

func (f *fakeImages) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[name]
	return ok
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) Fire(_ context.Context, event string, _ interface{}) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

type fixture struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	contacts *repositories.ContactRepository
	images   *fakeImages
	events   *recorder
	tokens   *auth.TokenManager
	catalog  models.Catalog
}

func newFixture(t *testing.T) *fixture {
	db := testkit.DB(t, &models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Contact{})
	return &fixture{
		db:       db,
		users:    repositories.NewUserRepository(db),
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
		contacts: repositories.NewContactRepository(db),
		images:   newFakeImages(),
		events:   &recorder{},
		tokens:   auth.NewTokenManager("test-key-0123456789", "storefront", "storefront-clients", time.Hour),
		catalog:  models.NewCatalog(),
	}
}

func (f *fixture) auth() *AuthService {
	return NewAuthService(f.users, f.tokens, f.events)
}

func (f *fixture) catalogService() *CatalogService {
	return NewCatalogService(f.products, f.images, f.events, f.catalog)
}

func (f *fixture) cart() *CartService {
	return NewCartService(f.products, f.catalog, decimal.NewFromInt(5))
}

func (f *fixture) orderService() *OrderService {
	return NewOrderService(f.orders, f.users, f.products, f.events, f.catalog, decimal.NewFromInt(5))
}

func (f *fixture) user(t *testing.T, email string, role models.Role) models.User {
	t.Helper()
	u := models.User{FirstName: "F", LastName: "L", Email: email, Address: "1 Road", Password: "x", Role: role}
	require.NoError(t, f.users.Create(context.Background(), &u))
	return u
}

func (f *fixture) product(t *testing.T, name, price string) models.Product {
	t.Helper()
	p := models.Product{Name: name, Brand: "Acme", Category: "Phones", Price: decimal.RequireFromString(price), ImageFileName: "seed.png"}
	require.NoError(t, f.products.Create(context.Background(), &p))
	return p
}
