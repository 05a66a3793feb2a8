package graph

import (
	"go.uber.org/zap"

	"github.com/moviegraph/core/internal/store"
)

// Resolver is the root resolver. Query and mutation fields are promoted from
// the embedded resolvers.
type Resolver struct {
	*queryResolver
	*mutationResolver
}

func NewResolver(st *store.Store, logger *zap.Logger) *Resolver {
	return &Resolver{
		queryResolver:    &queryResolver{store: st},
		mutationResolver: &mutationResolver{store: st, logger: logger},
	}
}
