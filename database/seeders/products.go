package seeders

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	Register("products", SeedProducts)
}

var sampleProducts = []models.Product{
	{Name: "Galaxy S24", Brand: "Samsung", Category: "Phones", Price: decimal.RequireFromString("799.99"), Description: "6.2 inch display, 128 GB"},
	{Name: "iPhone 15", Brand: "Apple", Category: "Phones", Price: decimal.RequireFromString("899.00"), Description: "A16 Bionic, 128 GB"},
	{Name: "ThinkPad X1 Carbon", Brand: "Lenovo", Category: "Computers", Price: decimal.RequireFromString("1499.00"), Description: "14 inch ultrabook"},
	{Name: "MX Master 3S", Brand: "Logitech", Category: "Accessories", Price: decimal.RequireFromString("99.99"), Description: "Wireless mouse"},
	{Name: "LaserJet Pro M404", Brand: "HP", Category: "Printers", Price: decimal.RequireFromString("249.50"), Description: "Monochrome laser printer"},
	{Name: "EOS R50", Brand: "Canon", Category: "Cameras", Price: decimal.RequireFromString("679.00"), Description: "Mirrorless camera body"},
	{Name: "Gift Card", Brand: "Storefront", Category: "Others", Price: decimal.RequireFromString("25.00")},
}

// SeedProducts inserts the sample catalogue into an empty products table.
func SeedProducts(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	repo := repositories.NewProductRepository(db)
	for _, p := range sampleProducts {
		p.ImageFileName = "placeholder.png"
		if err := repo.Create(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}
