// Package providers assembles the storefront: repositories, services,
// listeners and routes, from already-open infrastructure handles.
package providers

import (
	"fmt"

	"github.com/shashiranjanraj/storefront/app/listeners"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Settings are the configuration groups the storefront reads at boot.
type Settings struct {
	JWT   config.JWTSettings
	Store config.StoreSettings
}

// LoadSettings decodes Settings from the merged configuration.
func LoadSettings() (Settings, error) {
	jwt, err := config.JWT()
	if err != nil {
		return Settings{}, err
	}
	store, err := config.Store()
	if err != nil {
		return Settings{}, err
	}
	return Settings{JWT: jwt, Store: store}, nil
}

// Storefront holds the wired services.
type Storefront struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Orders   *services.OrderService
	Contacts *services.ContactService
	Users    *repositories.UserRepository

	tokens           *auth.TokenManager
	images           *services.DiskImageStore
	catalogAdminOnly bool
}

// New wires the storefront on top of db and disk. Listeners are registered
// on events.
func New(db *gorm.DB, disk storage.Disk, events *event.Dispatcher, s Settings) (*Storefront, error) {
	fee, err := decimal.NewFromString(s.Store.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("providers: SHIPPING_FEE %q: %w", s.Store.ShippingFee, err)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("providers: SHIPPING_FEE must not be negative")
	}

	catalog := models.NewCatalog()
	tokens := auth.NewTokenManager(s.JWT.Key, s.JWT.Issuer, s.JWT.Audience, s.JWT.TTL)
	images := services.NewDiskImageStore(disk)

	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)
	contacts := repositories.NewContactRepository(db)

	listeners.Register(events, products)

	return &Storefront{
		Auth:             services.NewAuthService(users, tokens, events),
		Catalog:          services.NewCatalogService(products, images, events, catalog),
		Cart:             services.NewCartService(products, catalog, fee),
		Orders:           services.NewOrderService(orders, users, products, events, catalog, fee),
		Contacts:         services.NewContactService(contacts, catalog),
		Users:            users,
		tokens:           tokens,
		images:           images,
		catalogAdminOnly: s.Store.CatalogAdminOnly,
	}, nil
}

// Tokens exposes the token manager, e.g. for issuing tokens in tests.
func (sf *Storefront) Tokens() *auth.TokenManager { return sf.tokens }

// Routes mounts the API on r.
func (sf *Storefront) Routes(r *router.Router) error {
	return routes.RegisterAPI(r, routes.Deps{
		Auth:             sf.Auth,
		Catalog:          sf.Catalog,
		Cart:             sf.Cart,
		Orders:           sf.Orders,
		Contacts:         sf.Contacts,
		Tokens:           sf.tokens,
		Images:           sf.images,
		CatalogAdminOnly: sf.catalogAdminOnly,
	})
}
