package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCacheTTL bounds how long a product looked up by id stays in Redis.
const ProductCacheTTL = 10 * time.Minute

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	SortBy   string // column name, already whitelisted by the caller
	Desc     bool
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductCacheKey is the Redis key of a cached product.
func ProductCacheKey(id uint) string {
	return fmt.Sprintf("products:%d", id)
}

func (r *ProductRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx).Model(&models.Product{})
}

// Find returns the product with id, served from the cache when possible.
func (r *ProductRepository) Find(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	hit := true
	err := cache.Remember(ProductCacheKey(id), ProductCacheTTL, &p, func() error {
		hit = false
		return r.query(ctx).Where("id = ?", id).First(&p)
	})
	if cache.Enabled() {
		metrics.ObserveCache("products", hit)
	}
	return p, translate("find product", err)
}

// FindMany loads the products whose ids appear in ids. Missing ids are
// simply absent from the result.
func (r *ProductRepository) FindMany(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.query(ctx).Where("id IN ?", ids).Order("id asc").Get(&products)
	return products, translate("find products", err)
}

// Search returns one page of products matching f.
func (r *ProductRepository) Search(ctx context.Context, f ProductFilter, page int) ([]models.Product, orm.Pagination, error) {
	q := r.query(ctx)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	p, err := q.Paginate(page, PageSize)
	if err != nil {
		return nil, orm.Pagination{}, translate("count products", err)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	dir := "asc"
	if f.Desc {
		dir = "desc"
	}

	ordered := q.Order(sortBy + " " + dir)
	if sortBy != "id" {
		ordered = ordered.Order("id " + dir)
	}

	products := []models.Product{}
	err = ordered.Page(p).Get(&products)
	return products, p, translate("search products", err)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return translate("create product", orm.New(r.db).WithContext(ctx).Create(p))
}

func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	return translate("save product", orm.New(r.db).WithContext(ctx).Save(p))
}

// Delete removes the product row with id.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	n, err := orm.New(r.db).WithContext(ctx).Delete(&models.Product{}, id)
	if err != nil {
		return translate("delete product", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Ordered reports whether any order item references product id.
func (r *ProductRepository) Ordered(ctx context.Context, id uint) (bool, error) {
	n, err := orm.New(r.db).WithContext(ctx).Model(&models.OrderItem{}).Where("product_id = ?", id).Count()
	if err != nil {
		return false, translate("count product order items", err)
	}
	return n > 0, nil
}

// Forget drops the cached copy of product id.
func (r *ProductRepository) Forget(id uint) error {
	return cache.Forget(ProductCacheKey(id))
}
