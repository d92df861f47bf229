// Package graphql exposes the product catalogue as a read-only GraphQL query.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	pkggraphql "github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shopspring/decimal"
)

// ImageURLs resolves stored image names to public addresses.
type ImageURLs interface {
	URL(name string) string
}

// Schema builds the catalogue schema:
//
//	products(search, category, minPrice, maxPrice, sort, order, page): ProductPage
//	product(id: Int!): Product
//	categories: [String]
func Schema(catalog *services.CatalogService, images ImageURLs) (graphql.Schema, error) {
	product := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.Int},
			"name":        &graphql.Field{Type: graphql.String},
			"brand":       &graphql.Field{Type: graphql.String},
			"category":    &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Float},
			"description": &graphql.Field{Type: graphql.String},
			"imageUrl":    &graphql.Field{Type: graphql.String},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})

	page := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductPage",
		Fields: graphql.Fields{
			"items":      &graphql.Field{Type: graphql.NewList(product)},
			"total":      &graphql.Field{Type: graphql.Int},
			"page":       &graphql.Field{Type: graphql.Int},
			"pageSize":   &graphql.Field{Type: graphql.Int},
			"totalPages": &graphql.Field{Type: graphql.Int},
		},
	})

	toMap := func(p models.Product) map[string]interface{} {
		return map[string]interface{}{
			"id":          int(p.ID),
			"name":        p.Name,
			"brand":       p.Brand,
			"category":    p.Category,
			"price":       p.Price.InexactFloat64(),
			"description": p.Description,
			"imageUrl":    images.URL(p.ImageFileName),
			"createdAt":   p.CreatedAt,
		}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: page,
				Args: graphql.FieldConfigArgument{
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"minPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"maxPrice": &graphql.ArgumentConfig{Type: graphql.Float},
					"sort":     &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "id"},
					"order":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "desc"},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					q := services.ProductQuery{
						Search:   stringArg(p, "search"),
						Category: stringArg(p, "category"),
						MinPrice: priceArg(p, "minPrice"),
						MaxPrice: priceArg(p, "maxPrice"),
						Sort:     stringArg(p, "sort"),
						Order:    stringArg(p, "order"),
					}
					q.Page, _ = p.Args["page"].(int)

					items, pg, err := catalog.List(p.Context, q)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"items":      collection.Map(items, toMap),
						"total":      int(pg.Total),
						"page":       pg.Page,
						"pageSize":   pg.PageSize,
						"totalPages": pg.TotalPages,
					}, nil
				},
			},
			"product": &graphql.Field{
				Type: product,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id <= 0 {
						return nil, services.ErrNotFound
					}
					prod, err := catalog.Get(p.Context, uint(id))
					if err != nil {
						return nil, err
					}
					return toMap(prod), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return catalog.Categories(), nil
				},
			},
		},
	})

	return pkggraphql.NewSchema(query)
}

func stringArg(p graphql.ResolveParams, key string) string {
	s, _ := p.Args[key].(string)
	return s
}

func priceArg(p graphql.ResolveParams, key string) *decimal.Decimal {
	f, ok := p.Args[key].(float64)
	if !ok {
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}
