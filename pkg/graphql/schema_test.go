package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thedosaspot/dosaspot/pkg/graphql"
)

func schema(t *testing.T) gql.Schema {
	t.Helper()
	s, err := graphql.NewSchema(gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"greet": &gql.Field{
				Type: gql.String,
				Args: gql.FieldConfigArgument{"name": &gql.ArgumentConfig{Type: gql.String}},
				Resolve: func(p gql.ResolveParams) (any, error) {
					return "hello " + p.Args["name"].(string), nil
				},
			},
		},
	}))
	require.NoError(t, err)
	return s
}

func post(t *testing.T, h http.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestHandlerRunsQueryWithVariables(t *testing.T) {
	rec, out := post(t, graphql.Handler(schema(t)),
		`{"query":"query($n:String){ greet(name:$n) }","variables":{"n":"dosa"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"greet": "hello dosa"}, out["data"])
}

func TestHandlerReportsQueryErrors(t *testing.T) {
	_, out := post(t, graphql.Handler(schema(t)), `{"query":"{ nope }"}`)
	assert.NotEmpty(t, out["errors"])
}

func TestHandlerRequiresQuery(t *testing.T) {
	rec, _ := post(t, graphql.Handler(schema(t)), `{"variables":{}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
