// Package graph exposes the expense services over GraphQL.
package graph

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/mmynk/splitledger/internal/service"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds nesting such as member.groups.members.groups...
const maxQueryDepth = 12

// Services are the handlers the resolvers delegate to.
type Services struct {
	Members  *service.MemberService
	Groups   *service.GroupService
	Expenses *service.ExpenseService
	Accounts *service.Accounts
}

// Schema is the executable schema. Exec normalises wide integer literals
// before handing the query to graphql-go.
type Schema struct {
	*graphql.Schema
}

// NewSchema parses the embedded schema and binds it to the root resolver.
func NewSchema(svcs Services) (*Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, &Resolver{svcs: svcs},
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return &Schema{Schema: schema}, nil
}

// Exec runs a query or mutation against the schema.
func (s *Schema) Exec(ctx context.Context, query, operationName string, variables map[string]interface{}) *graphql.Response {
	return s.Schema.Exec(ctx, quoteWideInts(query), operationName, variables)
}

// NewHandler serves schema at a single endpoint. The caller is read from the
// request context, so mount it behind middleware.CurrentUser.
func NewHandler(schema *Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Query         string                 `json:"query"`
			OperationName string                 `json:"operationName"`
			Variables     map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		response := schema.Exec(r.Context(), params.Query, params.OperationName, params.Variables)
		body, err := json.Marshal(response)
		if err != nil {
			slog.Error("Failed to encode GraphQL response", "error", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	})
}

// panicLogger routes resolver panics to slog instead of the standard logger.
type panicLogger struct{}

func (panicLogger) LogPanic(ctx context.Context, value interface{}) {
	slog.ErrorContext(ctx, "GraphQL resolver panic", "panic", value)
}
