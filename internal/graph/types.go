package graph

import (
	"github.com/moviegraph/core/internal/models"
	"github.com/moviegraph/core/internal/store"
)

type movieResolver struct {
	store *store.Store
	movie models.Movie
}

func (r *movieResolver) ID() int32 {
	return r.movie.ID
}

func (r *movieResolver) Name() string {
	return r.movie.Name
}

func (r *movieResolver) DirectorID() int32 {
	return r.movie.DirectorID
}

// Director is nil when the movie references a director that does not exist.
func (r *movieResolver) Director() *directorResolver {
	d, ok := r.store.Director(r.movie.DirectorID)
	if !ok {
		return nil
	}
	return &directorResolver{store: r.store, director: d}
}

type directorResolver struct {
	store    *store.Store
	director models.Director
}

func (r *directorResolver) ID() int32 {
	return r.director.ID
}

func (r *directorResolver) Name() string {
	return r.director.Name
}

func (r *directorResolver) Movies() []*movieResolver {
	return wrapMovies(r.store, r.store.MoviesByDirector(r.director.ID))
}

func wrapMovies(st *store.Store, movies []models.Movie) []*movieResolver {
	out := make([]*movieResolver, 0, len(movies))
	for _, m := range movies {
		out = append(out, &movieResolver{store: st, movie: m})
	}
	return out
}

func wrapDirectors(st *store.Store, directors []models.Director) []*directorResolver {
	out := make([]*directorResolver, 0, len(directors))
	for _, d := range directors {
		out = append(out, &directorResolver{store: st, director: d})
	}
	return out
}
