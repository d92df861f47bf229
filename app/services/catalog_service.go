package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shopspring/decimal"
)

// ProductStore is the product repository as seen by the services.
type ProductStore interface {
	Find(ctx context.Context, id uint) (models.Product, error)
	FindMany(ctx context.Context, ids []uint) ([]models.Product, error)
	Search(ctx context.Context, f repositories.ProductFilter, page int) ([]models.Product, orm.Pagination, error)
	Create(ctx context.Context, p *models.Product) error
	Save(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uint) error
	Ordered(ctx context.Context, id uint) (bool, error)
}

// ProductQuery carries the listing parameters as received from the client.
type ProductQuery struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
	Order    string
	Page     int
}

type ProductInput struct {
	Name        string          `json:"name"        validate:"required,max=100"`
	Brand       string          `json:"brand"       validate:"required,max=100"`
	Category    string          `json:"category"    validate:"required,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description" validate:"max=2000"`
}

// ImageUpload is an uploaded image and the name it was sent under.
type ImageUpload struct {
	Content  []byte
	Filename string
}

func (u *ImageUpload) present() bool { return u != nil && len(u.Content) > 0 }

var sortColumns = map[string]string{
	"name":     "name",
	"brand":    "brand",
	"category": "category",
	"price":    "price",
	"date":     "created_at",
	"id":       "id",
}

type CatalogService struct {
	products ProductStore
	images   ImageStore
	events   Publisher
	catalog  models.Catalog
}

func NewCatalogService(products ProductStore, images ImageStore, events Publisher, catalog models.Catalog) *CatalogService {
	return &CatalogService{products: products, images: images, events: publisherOrNop(events), catalog: catalog}
}

// List returns one page of products. Sort keys outside the known set fall
// back to id; anything but an exact "asc" sorts descending.
func (s *CatalogService) List(ctx context.Context, q ProductQuery) ([]models.Product, orm.Pagination, error) {
	column, ok := sortColumns[strings.ToLower(strings.TrimSpace(q.Sort))]
	if !ok {
		column = "id"
	}

	return s.products.Search(ctx, repositories.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   column,
		Desc:     q.Order != "asc",
	}, q.Page)
}

func (s *CatalogService) Get(ctx context.Context, id uint) (models.Product, error) {
	return s.products.Find(ctx, id)
}

// Categories lists the accepted product categories.
func (s *CatalogService) Categories() []string {
	return append([]string(nil), s.catalog.Categories...)
}

// Create stores the image, then the product row. A failed row write removes
// the image again.
func (s *CatalogService) Create(ctx context.Context, in ProductInput, image *ImageUpload) (models.Product, error) {
	if err := s.check(in); err != nil {
		return models.Product{}, err
	}
	if !image.present() {
		return models.Product{}, ErrMissingImage
	}

	name, err := s.images.Store(ctx, image.Content, filepath.Ext(image.Filename))
	if err != nil {
		return models.Product{}, err
	}

	p := models.Product{ImageFileName: name}
	apply(&p, in)
	if err := s.products.Create(ctx, &p); err != nil {
		s.discardImage(ctx, name)
		return models.Product{}, err
	}

	s.events.Fire(ctx, EventProductSaved, ProductSaved{Product: p})
	return p, nil
}

// Update rewrites product id. A new image replaces the old one only after
// the row is saved; without one the current image is kept.
func (s *CatalogService) Update(ctx context.Context, id uint, in ProductInput, image *ImageUpload) (models.Product, error) {
	p, err := s.products.Find(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if err := s.check(in); err != nil {
		return models.Product{}, err
	}

	oldImage := p.ImageFileName
	if image.present() {
		name, err := s.images.Store(ctx, image.Content, filepath.Ext(image.Filename))
		if err != nil {
			return models.Product{}, err
		}
		p.ImageFileName = name
	}

	apply(&p, in)
	if err := s.products.Save(ctx, &p); err != nil {
		if p.ImageFileName != oldImage {
			s.discardImage(ctx, p.ImageFileName)
		}
		return models.Product{}, err
	}

	if p.ImageFileName != oldImage {
		s.discardImage(ctx, oldImage)
	}

	s.events.Fire(ctx, EventProductSaved, ProductSaved{Product: p})
	return p, nil
}

// Delete removes the row and then its image, returning the removed
// product. Products referenced by an order are kept (ErrProductInUse).
func (s *CatalogService) Delete(ctx context.Context, id uint) (models.Product, error) {
	p, err := s.products.Find(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	ordered, err := s.products.Ordered(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if ordered {
		return models.Product{}, ErrProductInUse
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return models.Product{}, err
	}
	s.discardImage(ctx, p.ImageFileName)

	s.events.Fire(ctx, EventProductDeleted, ProductDeleted{Product: p})
	return p, nil
}

func (s *CatalogService) check(in ProductInput) error {
	if !s.catalog.ValidCategory(in.Category) {
		return ErrInvalidCategory
	}
	if in.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// discardImage deletes an image file; a failure is only logged.
func (s *CatalogService) discardImage(ctx context.Context, name string) {
	if err := s.images.Delete(ctx, name); err != nil {
		logger.WithCtx(ctx).Warn("product image delete failed", "image", name, "error", err)
	}
}

func apply(p *models.Product, in ProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Category = in.Category
	p.Price = in.Price.Round(2)
	p.Description = strings.TrimSpace(in.Description)
}
