package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	appgraphql "github.com/shashiranjanraj/storefront/app/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// ImageURLs resolves stored product image names to public addresses.
type ImageURLs interface {
	URL(name string) string
}

// Deps carries everything the API routes need.
type Deps struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Cart     *services.CartService
	Orders   *services.OrderService
	Contacts *services.ContactService
	Tokens   middleware.TokenVerifier
	Images   ImageURLs

	// CatalogAdminOnly gates product writes behind the admin role.
	CatalogAdminOnly bool
}

// RegisterAPI mounts the JSON API under /api and the catalogue GraphQL
// endpoint at /graphql.
func RegisterAPI(r *router.Router, d Deps) error {
	account := controllers.NewAccountController(d.Auth)
	products := controllers.NewProductController(d.Catalog, d.Images)
	cart := controllers.NewCartController(d.Cart)
	orders := controllers.NewOrderController(d.Orders)
	contacts := controllers.NewContactController(d.Contacts)

	authenticated := middleware.Auth(d.Tokens)
	admin := rbac.HasRole(models.RoleAdmin.String())

	api := r.Group("/api")

	api.Post("/account/register", "account.register", ctx.Wrap(account.Register))
	api.Post("/account/login", "account.login", ctx.Wrap(account.Login))
	api.Get("/account/profile", "account.profile", ctx.Wrap(account.Profile), authenticated)

	api.Get("/products", "products.index", ctx.Wrap(products.Index))
	api.Get("/products/categories", "products.categories", ctx.Wrap(products.Categories))
	api.Get("/products/{id}", "products.show", ctx.Wrap(products.Show))

	var catalogWrite []router.Middleware
	if d.CatalogAdminOnly {
		catalogWrite = []router.Middleware{authenticated, admin}
	}
	writes := api.Group("/products", catalogWrite...)
	writes.Post("/", "products.store", ctx.Wrap(products.Store))
	writes.Put("/{id}", "products.update", ctx.Wrap(products.Update))
	writes.Delete("/{id}", "products.destroy", ctx.Wrap(products.Destroy))

	api.Get("/cart", "cart.show", ctx.Wrap(cart.Show))
	api.Get("/cart/paymentmethods", "cart.payment_methods", ctx.Wrap(cart.PaymentMethods))

	api.Get("/orders/statuses", "orders.statuses", ctx.Wrap(orders.Statuses))
	own := api.Group("/orders", authenticated)
	own.Get("/", "orders.index", ctx.Wrap(orders.Index))
	own.Post("/", "orders.store", ctx.Wrap(orders.Store))
	own.Get("/{id}", "orders.show", ctx.Wrap(orders.Show))
	own.Delete("/{id}", "orders.destroy", ctx.Wrap(orders.Destroy), admin)

	api.Get("/contacts/subjects", "contacts.subjects", ctx.Wrap(contacts.Subjects))
	api.Get("/contacts", "contacts.index", ctx.Wrap(contacts.Index))
	api.Post("/contacts", "contacts.store", ctx.Wrap(contacts.Store))
	api.Get("/contacts/{id}", "contacts.show", ctx.Wrap(contacts.Show))
	api.Put("/contacts/{id}", "contacts.update", ctx.Wrap(contacts.Update))
	api.Delete("/contacts/{id}", "contacts.destroy", ctx.Wrap(contacts.Destroy))

	schema, err := appgraphql.Schema(d.Catalog, d.Images)
	if err != nil {
		return err
	}
	r.Handle("/graphql", graphql.Handler(schema))
	return nil
}
