// Package store holds the movie and director collections for the lifetime of
// a server process. Collections are append-only and indexed by id.
package store

import (
	"sync"

	"github.com/moviegraph/core/internal/models"
)

type Store struct {
	mu sync.RWMutex

	movies    []models.Movie
	directors []models.Director

	movieByID    map[int32]int
	directorByID map[int32]int
	// director id -> positions in movies, in insertion order
	moviesByDirector map[int32][]int

	lastMovieID    int32
	lastDirectorID int32
}

type Stats struct {
	Movies         int `json:"movies"`
	Directors      int `json:"directors"`
	DanglingMovies int `json:"dangling_movies"`
}

func New() *Store {
	return &Store{
		movies:           []models.Movie{},
		directors:        []models.Director{},
		movieByID:        make(map[int32]int),
		directorByID:     make(map[int32]int),
		moviesByDirector: make(map[int32][]int),
	}
}

// NewSeeded returns a store holding the default directors and movies.
func NewSeeded() *Store {
	s := New()
	s.load(DefaultSeed())
	return s
}

// NewFromSeed returns a store holding the records of seed. Ids from the seed
// are kept and the counters continue after the highest one.
func NewFromSeed(seed *Seed) *Store {
	s := New()
	s.load(seed)
	return s
}

func (s *Store) load(seed *Seed) {
	for _, d := range seed.Directors {
		s.insertDirector(d)
	}
	for _, m := range seed.Movies {
		s.insertMovie(m)
	}
}

func (s *Store) Movie(id int32) (models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.movieByID[id]
	if !ok {
		return models.Movie{}, false
	}
	return s.movies[i], true
}

func (s *Store) Director(id int32) (models.Director, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.directorByID[id]
	if !ok {
		return models.Director{}, false
	}
	return s.directors[i], true
}

func (s *Store) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

func (s *Store) Directors() []models.Director {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Director, len(s.directors))
	copy(out, s.directors)
	return out
}

// MoviesByDirector returns the movies referencing directorID in insertion
// order. The director itself does not need to exist.
func (s *Store) MoviesByDirector(directorID int32) []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := s.moviesByDirector[directorID]
	out := make([]models.Movie, 0, len(positions))
	for _, i := range positions {
		out = append(out, s.movies[i])
	}
	return out
}

// AddMovie appends a movie and returns it with its assigned id. directorID
// is stored as given.
func (s *Store) AddMovie(name string, directorID int32) models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.Movie{
		ID:         s.lastMovieID + 1,
		Name:       name,
		DirectorID: directorID,
	}
	s.insertMovie(m)
	return m
}

func (s *Store) AddDirector(name string) models.Director {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := models.Director{
		ID:   s.lastDirectorID + 1,
		Name: name,
	}
	s.insertDirector(d)
	return d
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Movies:    len(s.movies),
		Directors: len(s.directors),
	}
	for _, m := range s.movies {
		if _, ok := s.directorByID[m.DirectorID]; !ok {
			stats.DanglingMovies++
		}
	}
	return stats
}

// insertMovie and insertDirector expect the caller to hold the write lock
// (or to own the store exclusively) and the id to be unused.
func (s *Store) insertMovie(m models.Movie) {
	s.movies = append(s.movies, m)
	pos := len(s.movies) - 1
	s.movieByID[m.ID] = pos
	s.moviesByDirector[m.DirectorID] = append(s.moviesByDirector[m.DirectorID], pos)
	if m.ID > s.lastMovieID {
		s.lastMovieID = m.ID
	}
}

func (s *Store) insertDirector(d models.Director) {
	s.directors = append(s.directors, d)
	s.directorByID[d.ID] = len(s.directors) - 1
	if d.ID > s.lastDirectorID {
		s.lastDirectorID = d.ID
	}
}
