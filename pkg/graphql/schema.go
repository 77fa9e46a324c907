// Package graphql serves a graphql-go schema over HTTP.
//
//	schema, err := graphql.NewSchema(rootQuery)
//	r.Post("/graphql", "graphql", graphql.Handler(schema))
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/thedosaspot/dosaspot/pkg/bind"
	"github.com/thedosaspot/dosaspot/pkg/response"
)

// NewSchema creates a new GraphQL schema from a provided RootQuery.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP POST body.
type Request struct {
	Query         string         `json:"query" validate:"required"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler executes POSTed queries against schema. The body is a plain
// GraphQL result ({"data":..,"errors":..}), not the REST envelope, so
// standard GraphQL clients work unchanged.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		errs, err := bind.JSON(w, r, &req)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if len(errs) > 0 {
			response.Write(w, http.StatusUnprocessableEntity, response.Envelope{
				Status:  http.StatusUnprocessableEntity,
				Message: "Validation failed",
				Errors:  errs,
			})
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
	}
}
