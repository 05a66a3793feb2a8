// Package graph defines the GraphQL schema of the movie API and binds its
// fields to the entity store.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	gqlotel "github.com/graph-gophers/graphql-go/trace/otel"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/moviegraph/core/internal/store"
)

//go:embed schema.graphql
var sdl string

// SDL returns the schema definition served by NewSchema.
func SDL() string {
	return sdl
}

type options struct {
	maxDepth       int
	maxParallelism int
	tracing        bool
}

type Option func(*options)

// WithMaxDepth rejects documents nesting selections deeper than n.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

func WithMaxParallelism(n int) Option {
	return func(o *options) { o.maxParallelism = n }
}

// WithTracing records an OpenTelemetry span per request and per resolved field.
func WithTracing() Option {
	return func(o *options) { o.tracing = true }
}

// NewSchema parses the SDL and binds the query and mutation resolvers backed
// by st.
func NewSchema(st *store.Store, logger *zap.Logger, opts ...Option) (*graphql.Schema, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	schemaOpts := []graphql.SchemaOpt{
		graphql.UseStringDescriptions(),
		graphql.Logger(&panicLogger{logger: logger}),
	}
	if o.maxDepth > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxDepth(o.maxDepth))
	}
	if o.maxParallelism > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxParallelism(o.maxParallelism))
	}
	if o.tracing {
		schemaOpts = append(schemaOpts, graphql.Tracer(gqlotel.DefaultTracer()))
	}

	schema, err := graphql.ParseSchema(sdl, NewResolver(st, logger), schemaOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "parsing graphql schema")
	}
	return schema, nil
}

// panicLogger reports resolver panics; graphql-go turns them into field errors.
type panicLogger struct {
	logger *zap.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.Error("graphql resolver panic", zap.String("panic", fmt.Sprint(value)), zap.Stack("stack"))
}
