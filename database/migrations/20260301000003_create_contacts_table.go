package migrations

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000003_create_contacts_table", &CreateContactsTable{})
}

type CreateContactsTable struct{}

func (m *CreateContactsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Contact{})
}

func (m *CreateContactsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Contact{})
}
