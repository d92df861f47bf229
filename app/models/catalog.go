package models

import (
	"slices"
	"sort"
)

// Catalog holds the fixed value sets the shop validates against. It is built
// once at boot and handed to the services; nothing mutates it afterwards.
type Catalog struct {
	Categories      []string
	PaymentMethods  map[string]string // key -> display label
	PaymentStatuses []string          // first entry is the initial status
	OrderStatuses   []string          // first entry is the initial status
	Subjects        []string
}

// NewCatalog returns the storefront's value sets.
func NewCatalog() Catalog {
	return Catalog{
		Categories: []string{"Phones", "Computers", "Accessories", "Printers", "Cameras", "Others"},
		PaymentMethods: map[string]string{
			"Cash":        "Cash on Delivery",
			"Paypal":      "Paypal",
			"Credit Card": "Credit Card",
		},
		PaymentStatuses: []string{"Pending", "Accepted", "Canceled"},
		OrderStatuses:   []string{"Created", "Accepted", "Canceled", "Shipped", "Delivered", "Returned"},
		Subjects:        []string{"Order Status", "Refund Requested", "Job Application", "Other"},
	}
}

func (c Catalog) ValidCategory(s string) bool { return slices.Contains(c.Categories, s) }

func (c Catalog) ValidSubject(s string) bool { return slices.Contains(c.Subjects, s) }

func (c Catalog) ValidPaymentMethod(s string) bool {
	_, ok := c.PaymentMethods[s]
	return ok
}

// PaymentMethodKeys lists the accepted payment method keys, sorted.
func (c Catalog) PaymentMethodKeys() []string {
	keys := make([]string, 0, len(c.PaymentMethods))
	for k := range c.PaymentMethods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c Catalog) InitialPaymentStatus() string { return c.PaymentStatuses[0] }

func (c Catalog) InitialOrderStatus() string { return c.OrderStatuses[0] }
