package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed order. It owns its items; the items never point back.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	User            *User           `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	ShippingFee     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"shipping_fee"`
	DeliveryAddress string          `gorm:"size:255;not null" json:"delivery_address"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus   string          `gorm:"size:50;not null" json:"payment_status"`
	OrderStatus     string          `gorm:"size:50;not null" json:"order_status"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem is one line of an order. OrderID exists only for storage.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"-"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"unit_price"`
}

// Sanitize blanks the embedded user's password hash.
func (o *Order) Sanitize() *Order {
	if o != nil {
		o.User.Sanitize()
	}
	return o
}

// SubTotal sums unit price times quantity over the items.
func (o *Order) SubTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
