package store

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/moviegraph/core/internal/models"
)

// Seed is the initial content of a store.
type Seed struct {
	Directors []models.Director `json:"directors"`
	Movies    []models.Movie    `json:"movies"`
}

func DefaultSeed() *Seed {
	return &Seed{
		Directors: []models.Director{
			{ID: 1, Name: "Christopher Nolan"},
			{ID: 2, Name: "Peter Hunt"},
			{ID: 3, Name: "Jackie Chan"},
		},
		Movies: []models.Movie{
			{ID: 1, Name: "Inception", DirectorID: 1},
			{ID: 2, Name: "James Bond", DirectorID: 2},
			{ID: 3, Name: "Who Am I", DirectorID: 3},
			{ID: 4, Name: "Police Story", DirectorID: 3},
			{ID: 5, Name: "Dark Knight", DirectorID: 1},
			{ID: 6, Name: "InterStellar", DirectorID: 1},
			{ID: 7, Name: "Crime Story", DirectorID: 3},
			{ID: 8, Name: "Rush Hour", DirectorID: 3},
		},
	}
}

// ParseSeed decodes a JSON seed document. Movies may reference directors
// that are not part of the seed.
func ParseSeed(data []byte) (*Seed, error) {
	if len(data) == 0 {
		return nil, errors.New("empty seed data")
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal seed")
	}

	if err := seed.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid seed")
	}

	return &seed, nil
}

func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading seed file %s", path)
	}
	return ParseSeed(data)
}

func (s *Seed) validate() error {
	seen := make(map[int32]bool, len(s.Directors))
	for _, d := range s.Directors {
		if d.ID <= 0 {
			return errors.Errorf("director %q: id must be positive", d.Name)
		}
		if d.Name == "" {
			return errors.Errorf("director %d: missing name", d.ID)
		}
		if seen[d.ID] {
			return errors.Errorf("duplicate director id %d", d.ID)
		}
		seen[d.ID] = true
	}

	seen = make(map[int32]bool, len(s.Movies))
	for _, m := range s.Movies {
		if m.ID <= 0 {
			return errors.Errorf("movie %q: id must be positive", m.Name)
		}
		if m.Name == "" {
			return errors.Errorf("movie %d: missing name", m.ID)
		}
		if seen[m.ID] {
			return errors.Errorf("duplicate movie id %d", m.ID)
		}
		seen[m.ID] = true
	}

	return nil
}
