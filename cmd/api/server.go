package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/moviegraph/core/cmd/api/middleware"
	"github.com/moviegraph/core/internal/config"
	"github.com/moviegraph/core/internal/graph"
	"github.com/moviegraph/core/internal/handlers"
	"github.com/moviegraph/core/internal/metrics"
	"github.com/moviegraph/core/internal/store"
)

func newStore(cfg config.Config) (*store.Store, error) {
	switch {
	case cfg.SeedFile != "":
		seed, err := store.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		return store.NewFromSeed(seed), nil
	case cfg.Seed:
		return store.NewSeeded(), nil
	default:
		return store.New(), nil
	}
}

func newRouter(cfg config.Config, st *store.Store, logger *zap.Logger) (http.Handler, error) {
	opts := []graph.Option{
		graph.WithMaxDepth(cfg.MaxDepth),
		graph.WithMaxParallelism(cfg.MaxParallelism),
	}
	if cfg.Tracing {
		opts = append(opts, graph.WithTracing())
	}
	schema, err := graph.NewSchema(st, logger, opts...)
	if err != nil {
		return nil, err
	}

	var m *metrics.Metrics
	if cfg.Metrics {
		m = metrics.New(st)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", &handlers.GraphQLHandler{
		Schema:   schema,
		Logger:   logger,
		Metrics:  m,
		GraphiQL: cfg.GraphiQL,
	})
	mux.HandleFunc("/health", handlers.HealthHandler(st))
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	return middleware.Chain(mux,
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.Cors(cfg.CorsOrigin),
	), nil
}
