package repositories

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// OrderScope limits which orders a lookup may see: every order when All is
// set, otherwise only those owned by OwnerID.
type OrderScope struct {
	All     bool
	OwnerID uint
}

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) scoped(ctx context.Context, s OrderScope) *orm.Query {
	q := orm.New(r.db).WithContext(ctx).Model(&models.Order{})
	if !s.All {
		q = q.Where("user_id = ?", s.OwnerID)
	}
	return q
}

func withAssociations(q *orm.Query) *orm.Query {
	return q.Preload("User").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("product_id asc")
	}).Preload("Items.Product")
}

// Create stores the order and all of its items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	err := orm.New(r.db).WithContext(ctx).Transaction(func(tx *orm.Query) error {
		return tx.Create(o)
	})
	return translate("create order", err)
}

// List returns one page of orders visible under s, newest first.
func (r *OrderRepository) List(ctx context.Context, s OrderScope, page int) ([]models.Order, orm.Pagination, error) {
	q := r.scoped(ctx, s)

	p, err := q.Paginate(page, PageSize)
	if err != nil {
		return nil, orm.Pagination{}, translate("count orders", err)
	}

	orders := []models.Order{}
	err = withAssociations(q).Order("id desc").Page(p).Get(&orders)
	return orders, p, translate("list orders", err)
}

// Find returns order id if it is visible under s.
func (r *OrderRepository) Find(ctx context.Context, s OrderScope, id uint) (models.Order, error) {
	var o models.Order
	err := withAssociations(r.scoped(ctx, s)).Where("id = ?", id).First(&o)
	return o, translate("find order", err)
}

// Delete removes order id together with its items.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	err := orm.New(r.db).WithContext(ctx).Transaction(func(tx *orm.Query) error {
		if _, err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}); err != nil {
			return err
		}
		n, err := tx.Delete(&models.Order{}, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return translate("delete order", err)
}
