package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/resource"
	"github.com/shopspring/decimal"
)

// ImageURLs resolves stored image names to public addresses.
type ImageURLs interface {
	URL(name string) string
}

type ProductController struct {
	catalog *services.CatalogService
	json    resource.Transformer[models.Product]
}

func NewProductController(catalog *services.CatalogService, images ImageURLs) *ProductController {
	return &ProductController{catalog: catalog, json: productResource(images)}
}

func productResource(images ImageURLs) resource.Transformer[models.Product] {
	return func(p models.Product) resource.Map {
		return resource.Map{
			"id":              p.ID,
			"name":            p.Name,
			"brand":           p.Brand,
			"category":        p.Category,
			"price":           p.Price,
			"description":     p.Description,
			"image_file_name": p.ImageFileName,
			"image_url":       images.URL(p.ImageFileName),
			"created_at":      p.CreatedAt,
		}
	}
}

// Index handles GET /api/products.
func (pc *ProductController) Index(c *ctx.Context) {
	q := services.ProductQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.DefaultQuery("sort", "id"),
		Order:    c.DefaultQuery("order", "desc"),
		Page:     c.QueryInt("page", 1),
	}

	errs := map[string]string{}
	q.MinPrice = priceParam(c, "minPrice", errs)
	q.MaxPrice = priceParam(c, "maxPrice", errs)
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	products, p, err := pc.catalog.List(c.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Paginated(resource.Many(pc.json, products), p)
}

// Show handles GET /api/products/{id}.
func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	p, err := pc.catalog.Get(c.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.One(pc.json, p))
}

// Categories handles GET /api/products/categories.
func (pc *ProductController) Categories(c *ctx.Context) {
	c.Success(pc.catalog.Categories())
}

// Store handles POST /api/products (multipart form with an "image" file).
func (pc *ProductController) Store(c *ctx.Context) {
	in, image, ok := productForm(c)
	if !ok {
		return
	}

	p, err := pc.catalog.Create(c.Context(), in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(pc.json, p))
}

// Update handles PUT /api/products/{id}. The image field is optional.
func (pc *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	in, image, ok := productForm(c)
	if !ok {
		return
	}

	p, err := pc.catalog.Update(c.Context(), id, in, image)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.One(pc.json, p))
}

// Destroy handles DELETE /api/products/{id}.
func (pc *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}

	p, err := pc.catalog.Delete(c.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.One(pc.json, p))
}

// productForm reads the multipart product form. It writes the error
// response itself and returns ok=false when the form is unusable.
func productForm(c *ctx.Context) (services.ProductInput, *services.ImageUpload, bool) {
	if !c.ParseMultipart() {
		return services.ProductInput{}, nil, false
	}

	in := services.ProductInput{
		Name:        c.FormValue("name"),
		Brand:       c.FormValue("brand"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
	}

	errs := map[string]string{}
	switch raw := c.FormValue("price"); {
	case raw == "":
		errs["price"] = "The price field is required."
	default:
		price, err := decimal.NewFromString(raw)
		if err != nil {
			errs["price"] = "The price field must be a number."
		}
		in.Price = price
	}

	var image *services.ImageUpload
	content, name, err := c.FormFile("image")
	switch {
	case err == nil:
		image = &services.ImageUpload{Content: content, Filename: name}
	case !errors.Is(err, http.ErrMissingFile):
		errs["image"] = "The image could not be read."
	}

	if len(errs) > 0 {
		c.ValidationError(errs)
		return in, nil, false
	}
	if !c.Validate(&in) {
		return in, nil, false
	}
	return in, image, true
}

func priceParam(c *ctx.Context, key string, errs map[string]string) *decimal.Decimal {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		errs[key] = "The " + key + " field must be a number."
		return nil
	}
	return &v
}
