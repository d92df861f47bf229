package seeders

import (
	"context"
	"errors"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the admin account named by SEED_ADMIN_EMAIL, or promotes
// it when the address is already registered.
func SeedAdmin(ctx context.Context, db *gorm.DB) error {
	settings, err := config.Store()
	if err != nil {
		return err
	}

	users := repositories.NewUserRepository(db)
	_, err = users.FindByEmail(ctx, settings.SeedAdminEmail)
	switch {
	case err == nil:
		return users.SetRole(ctx, settings.SeedAdminEmail, models.RoleAdmin)
	case !errors.Is(err, repositories.ErrNotFound):
		return err
	}

	hash, err := auth.HashPassword(settings.SeedAdminPassword)
	if err != nil {
		return err
	}
	return users.Create(ctx, &models.User{
		FirstName: "Store",
		LastName:  "Admin",
		Email:     settings.SeedAdminEmail,
		Address:   "-",
		Password:  hash,
		Role:      models.RoleAdmin,
	})
}
