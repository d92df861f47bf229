// Package resource shapes models into API payloads.
//
//	var productJSON resource.Transformer[models.Product] = func(p models.Product) resource.Map {
//	    return resource.Map{"id": p.ID, "image_url": images.URL(p.ImageFileName)}
//	}
//
//	c.Success(resource.One(productJSON, product))
//	c.Paginated(resource.Many(productJSON, products), pagination)
package resource

import "github.com/shashiranjanraj/storefront/pkg/collection"

// Map is the output of a Transformer.
type Map = map[string]interface{}

// Transformer converts one model into its API shape.
type Transformer[T any] func(T) Map

// One transforms a single value.
func One[T any](t Transformer[T], v T) Map {
	return t(v)
}

// Many transforms every element of vs. A nil slice yields an empty one so
// lists always serialise as [].
func Many[T any](t Transformer[T], vs []T) []Map {
	if vs == nil {
		return []Map{}
	}
	return collection.Map(vs, t)
}
