// Package collection provides small generic helpers for slices and maps.
//
//	byID := collection.KeyBy(products, func(p models.Product) uint { return p.ID })
//	ids := collection.SortedKeys(quantities)
package collection

import (
	"cmp"
	"slices"
)

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// KeyBy indexes s by the key fn returns. Later elements win on duplicates.
func KeyBy[T any, K comparable](s []T, fn func(T) K) map[K]T {
	out := make(map[K]T, len(s))
	for _, v := range s {
		out[fn(v)] = v
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
