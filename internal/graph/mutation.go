package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/moviegraph/core/internal/logging"
	"github.com/moviegraph/core/internal/store"
)

type mutationResolver struct {
	store  *store.Store
	logger *zap.Logger
}

type addMovieArgs struct {
	Name       string
	DirectorID int32
}

// AddMovie does not check that the director exists.
func (r *mutationResolver) AddMovie(ctx context.Context, args addMovieArgs) *movieResolver {
	m := r.store.AddMovie(args.Name, args.DirectorID)
	logging.FromContext(ctx, r.logger).Info("movie added",
		zap.Int32("id", m.ID),
		zap.String("name", m.Name),
		zap.Int32("director_id", m.DirectorID))
	return &movieResolver{store: r.store, movie: m}
}

type addDirectorArgs struct {
	Name string
}

func (r *mutationResolver) AddDirector(ctx context.Context, args addDirectorArgs) *directorResolver {
	d := r.store.AddDirector(args.Name)
	logging.FromContext(ctx, r.logger).Info("director added",
		zap.Int32("id", d.ID),
		zap.String("name", d.Name))
	return &directorResolver{store: r.store, director: d}
}
