package graph

import (
	"github.com/moviegraph/core/internal/store"
)

type queryResolver struct {
	store *store.Store
}

type idArgs struct {
	ID *int32
}

// Movie resolves to null when id is omitted or unknown.
func (r *queryResolver) Movie(args idArgs) *movieResolver {
	if args.ID == nil {
		return nil
	}
	m, ok := r.store.Movie(*args.ID)
	if !ok {
		return nil
	}
	return &movieResolver{store: r.store, movie: m}
}

func (r *queryResolver) Director(args idArgs) *directorResolver {
	if args.ID == nil {
		return nil
	}
	d, ok := r.store.Director(*args.ID)
	if !ok {
		return nil
	}
	return &directorResolver{store: r.store, director: d}
}

func (r *queryResolver) Movies() []*movieResolver {
	return wrapMovies(r.store, r.store.Movies())
}

func (r *queryResolver) Directors() []*directorResolver {
	return wrapDirectors(r.store, r.store.Directors())
}
