package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes POSTed queries against schema and writes the graphql
// result ({"data":...,"errors":[...]}) as JSON.
func Handler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req Request
		body := http.MaxBytesReader(w, r.Body, bind.MaxBodyBytes())
		if err := json.NewDecoder(body).Decode(&req); err != nil || req.Query == "" {
			response.Error(w, http.StatusBadRequest, "Invalid GraphQL request")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	})
}
