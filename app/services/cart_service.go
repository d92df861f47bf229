package services

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shopspring/decimal"
)

// ParseProductIdentifiers turns "3-3-5" into {3:2, 5:1}. Tokens that are
// not unsigned integers are skipped; 0 is kept so callers can reject it as
// an unknown product.
func ParseProductIdentifiers(s string) map[uint]int {
	out := map[uint]int{}
	for _, tok := range strings.Split(s, "-") {
		id, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 64)
		if err != nil {
			continue
		}
		out[uint(id)]++
	}
	return out
}

type CartItem struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

type Cart struct {
	Items       []CartItem      `json:"cart_items"`
	SubTotal    decimal.Decimal `json:"sub_total"`
	ShippingFee decimal.Decimal `json:"shipping_fee"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type CartService struct {
	products    ProductStore
	catalog     models.Catalog
	shippingFee decimal.Decimal
}

func NewCartService(products ProductStore, catalog models.Catalog, shippingFee decimal.Decimal) *CartService {
	return &CartService{products: products, catalog: catalog, shippingFee: shippingFee}
}

// Price resolves the identifiers against the catalogue. Unknown ids are
// left out of the cart.
func (s *CartService) Price(ctx context.Context, identifiers string) (Cart, error) {
	quantities := ParseProductIdentifiers(identifiers)
	products, err := s.products.FindMany(ctx, collection.SortedKeys(quantities))
	if err != nil {
		return Cart{}, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	cart := Cart{Items: []CartItem{}, SubTotal: decimal.Zero, ShippingFee: s.shippingFee}
	for _, p := range products {
		qty := quantities[p.ID]
		cart.Items = append(cart.Items, CartItem{Product: p, Quantity: qty})
		cart.SubTotal = cart.SubTotal.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	cart.TotalPrice = cart.SubTotal.Add(s.shippingFee)
	return cart, nil
}

// PaymentMethods maps accepted payment method keys to display labels.
func (s *CartService) PaymentMethods() map[string]string {
	out := make(map[string]string, len(s.catalog.PaymentMethods))
	for k, v := range s.catalog.PaymentMethods {
		out[k] = v
	}
	return out
}
