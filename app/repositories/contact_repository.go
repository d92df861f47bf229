package repositories

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// ContactRepository handles database operations for Contact.
type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx).Model(&models.Contact{})
}

// List returns one page of contacts, newest first.
func (r *ContactRepository) List(ctx context.Context, page int) ([]models.Contact, orm.Pagination, error) {
	q := r.query(ctx)
	p, err := q.Paginate(page, PageSize)
	if err != nil {
		return nil, orm.Pagination{}, translate("count contacts", err)
	}

	contacts := []models.Contact{}
	err = q.Order("id desc").Page(p).Get(&contacts)
	return contacts, p, translate("list contacts", err)
}

func (r *ContactRepository) Find(ctx context.Context, id uint) (models.Contact, error) {
	var c models.Contact
	err := r.query(ctx).Where("id = ?", id).First(&c)
	return c, translate("find contact", err)
}

func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	return translate("create contact", orm.New(r.db).WithContext(ctx).Create(c))
}

func (r *ContactRepository) Save(ctx context.Context, c *models.Contact) error {
	return translate("save contact", orm.New(r.db).WithContext(ctx).Save(c))
}

// Delete removes contact id. A miss is ErrNotFound; anything else is a
// storage failure.
func (r *ContactRepository) Delete(ctx context.Context, id uint) error {
	n, err := orm.New(r.db).WithContext(ctx).Delete(&models.Contact{}, id)
	if err != nil {
		return translate("delete contact", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
