package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices serialise as JSON numbers rather than quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalogue item.
type Product struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:100;not null;index" json:"name"`
	Brand         string          `gorm:"size:100;not null" json:"brand"`
	Category      string          `gorm:"size:100;not null;index" json:"category"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Description   string          `gorm:"type:text;not null;default:''" json:"description"`
	ImageFileName string          `gorm:"size:255;not null" json:"image_file_name"`
	CreatedAt     time.Time       `json:"created_at"`
}
