// Package migrations registers the storefront schema migrations. It is
// blank-imported by cmd/storefront so every init() below runs at startup.
package migrations
