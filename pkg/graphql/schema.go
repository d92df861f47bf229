// Package graphql serves graphql-go schemas over HTTP.
package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a read-only schema from a root query object.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}
