package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"go.uber.org/zap"
)

// NewHandler assembles the single /graphql endpoint with middleware applied.
func NewHandler(schema graphql.Schema, log *zap.Logger) http.Handler {
	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", CaptureCredentials(gql))

	var h http.Handler = mux
	h = Logging(log)(h)
	h = Recover(log)(h)
	return h
}
