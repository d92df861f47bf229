package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ContactStore is the contact repository as seen by the services.
type ContactStore interface {
	List(ctx context.Context, page int) ([]models.Contact, orm.Pagination, error)
	Find(ctx context.Context, id uint) (models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	Save(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id uint) error
}

type ContactInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Phone     string `json:"phone"      validate:"max=50"`
	Subject   string `json:"subject"    validate:"required"`
	Message   string `json:"message"    validate:"required,min=5,max=4000"`
}

type ContactService struct {
	contacts ContactStore
	catalog  models.Catalog
}

func NewContactService(contacts ContactStore, catalog models.Catalog) *ContactService {
	return &ContactService{contacts: contacts, catalog: catalog}
}

func (s *ContactService) List(ctx context.Context, page int) ([]models.Contact, orm.Pagination, error) {
	return s.contacts.List(ctx, page)
}

func (s *ContactService) Get(ctx context.Context, id uint) (models.Contact, error) {
	return s.contacts.Find(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, in ContactInput) (models.Contact, error) {
	if !s.catalog.ValidSubject(in.Subject) {
		return models.Contact{}, ErrInvalidSubject
	}
	var c models.Contact
	fill(&c, in)
	if err := s.contacts.Create(ctx, &c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

func (s *ContactService) Update(ctx context.Context, id uint, in ContactInput) (models.Contact, error) {
	c, err := s.contacts.Find(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	if !s.catalog.ValidSubject(in.Subject) {
		return models.Contact{}, ErrInvalidSubject
	}
	fill(&c, in)
	if err := s.contacts.Save(ctx, &c); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, id uint) error {
	return s.contacts.Delete(ctx, id)
}

func (s *ContactService) Subjects() []string {
	return append([]string(nil), s.catalog.Subjects...)
}

func fill(c *models.Contact, in ContactInput) {
	c.FirstName = strings.TrimSpace(in.FirstName)
	c.LastName = strings.TrimSpace(in.LastName)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Subject = in.Subject
	c.Message = strings.TrimSpace(in.Message)
}
