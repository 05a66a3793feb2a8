package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moviegraph/core/internal/store"
)

func newTestSchema(t *testing.T, opts ...Option) (*graphql.Schema, *store.Store) {
	t.Helper()

	st := store.NewSeeded()
	schema, err := NewSchema(st, zap.NewNop(), opts...)
	require.NoError(t, err)
	return schema, st
}

func exec(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) *graphql.Response {
	t.Helper()
	return schema.Exec(context.Background(), query, "", vars)
}

func execOK(t *testing.T, schema *graphql.Schema, query string, vars map[string]interface{}) string {
	t.Helper()

	resp := exec(t, schema, query, vars)
	require.Empty(t, resp.Errors, "query: %s", query)
	return string(resp.Data)
}

func TestNewSchema(t *testing.T) {
	t.Run("parses with every option", func(t *testing.T) {
		_, err := NewSchema(store.New(), zap.NewNop(),
			WithMaxDepth(5), WithMaxParallelism(4), WithTracing())

		require.NoError(t, err)
	})

	t.Run("exposes sdl", func(t *testing.T) {
		assert.Contains(t, SDL(), "type Movie")
		assert.Contains(t, SDL(), "addDirector(name: String!): Director")
	})
}

func TestQueryMovie(t *testing.T) {
	schema, st := newTestSchema(t)

	t.Run("every seeded movie resolves to itself", func(t *testing.T) {
		for _, m := range st.Movies() {
			data := execOK(t, schema, `query($id: Int) { movie(id: $id) { id name directorId } }`,
				map[string]interface{}{"id": float64(m.ID)})

			want := fmt.Sprintf(`{"movie":{"id":%d,"name":%q,"directorId":%d}}`, m.ID, m.Name, m.DirectorID)
			assert.JSONEq(t, want, data)
		}
	})

	t.Run("unknown id yields null without error", func(t *testing.T) {
		data := execOK(t, schema, `{ movie(id: 999) { id } }`, nil)

		assert.JSONEq(t, `{"movie":null}`, data)
	})

	t.Run("omitted id yields null", func(t *testing.T) {
		data := execOK(t, schema, `{ movie { id } }`, nil)

		assert.JSONEq(t, `{"movie":null}`, data)
	})

	t.Run("repeated queries are identical", func(t *testing.T) {
		q := `{ movie(id: 4) { id name director { name } } }`

		assert.Equal(t, execOK(t, schema, q, nil), execOK(t, schema, q, nil))
	})

	t.Run("resolves director relationship", func(t *testing.T) {
		data := execOK(t, schema, `{ movie(id: 2) { name director { id name } } }`, nil)

		assert.JSONEq(t, `{"movie":{"name":"James Bond","director":{"id":2,"name":"Peter Hunt"}}}`, data)
	})
}

func TestQueryDirector(t *testing.T) {
	schema, st := newTestSchema(t)

	t.Run("every seeded director resolves to itself", func(t *testing.T) {
		for _, d := range st.Directors() {
			data := execOK(t, schema, `query($id: Int) { director(id: $id) { id name } }`,
				map[string]interface{}{"id": float64(d.ID)})

			assert.JSONEq(t, fmt.Sprintf(`{"director":{"id":%d,"name":%q}}`, d.ID, d.Name), data)
		}
	})

	t.Run("unknown id yields null", func(t *testing.T) {
		data := execOK(t, schema, `{ director(id: 12) { id } }`, nil)

		assert.JSONEq(t, `{"director":null}`, data)
	})

	t.Run("lists directed movies in order", func(t *testing.T) {
		data := execOK(t, schema, `{ director(id: 1) { movies { id name } } }`, nil)

		assert.JSONEq(t, `{"director":{"movies":[
			{"id":1,"name":"Inception"},
			{"id":5,"name":"Dark Knight"},
			{"id":6,"name":"InterStellar"}
		]}}`, data)
	})
}

func TestQueryCollections(t *testing.T) {
	schema, _ := newTestSchema(t)

	t.Run("movies returns seeded collection", func(t *testing.T) {
		var out struct {
			Movies []struct {
				ID int32 `json:"id"`
			} `json:"movies"`
		}
		require.NoError(t, json.Unmarshal([]byte(execOK(t, schema, `{ movies { id } }`, nil)), &out))

		require.Len(t, out.Movies, 8)
		for i, m := range out.Movies {
			assert.Equal(t, int32(i+1), m.ID)
		}
	})

	t.Run("directors returns seeded collection", func(t *testing.T) {
		data := execOK(t, schema, `{ directors { name } }`, nil)

		assert.JSONEq(t, `{"directors":[
			{"name":"Christopher Nolan"},
			{"name":"Peter Hunt"},
			{"name":"Jackie Chan"}
		]}`, data)
	})
}

func TestRelationshipConsistency(t *testing.T) {
	schema, st := newTestSchema(t)
	st.AddMovie("Dangling", 40)

	type director struct {
		ID int32 `json:"id"`
	}
	var out struct {
		Movies []struct {
			ID         int32     `json:"id"`
			DirectorID int32     `json:"directorId"`
			Director   *director `json:"director"`
		} `json:"movies"`
	}
	data := execOK(t, schema, `{ movies { id directorId director { id } } }`, nil)
	require.NoError(t, json.Unmarshal([]byte(data), &out))

	for _, m := range out.Movies {
		_, exists := st.Director(m.DirectorID)
		if !exists {
			assert.Nil(t, m.Director, "movie %d", m.ID)
			continue
		}
		require.NotNil(t, m.Director, "movie %d", m.ID)
		assert.Equal(t, m.DirectorID, m.Director.ID)
	}
}

func TestMutations(t *testing.T) {
	t.Run("add director then movie", func(t *testing.T) {
		schema, _ := newTestSchema(t)

		data := execOK(t, schema, `mutation { addDirector(name: "Tim") { id } }`, nil)
		assert.JSONEq(t, `{"addDirector":{"id":4}}`, data)

		data = execOK(t, schema, `mutation { addMovie(directorId: 4, name: "SJK") { id, name } }`, nil)
		assert.JSONEq(t, `{"addMovie":{"id":9,"name":"SJK"}}`, data)

		data = execOK(t, schema, `{ director(id: 4) { movies { name } } }`, nil)
		assert.JSONEq(t, `{"director":{"movies":[{"name":"SJK"}]}}`, data)
	})

	t.Run("dangling director reference is accepted", func(t *testing.T) {
		schema, st := newTestSchema(t)

		data := execOK(t, schema, `mutation { addMovie(directorId: 9, name: "SJK") { id director { id } } }`, nil)

		assert.JSONEq(t, `{"addMovie":{"id":9,"director":null}}`, data)
		assert.Len(t, st.Movies(), 9)
	})

	t.Run("collection lengths track successful adds", func(t *testing.T) {
		schema, _ := newTestSchema(t)

		for i := 0; i < 3; i++ {
			execOK(t, schema, `mutation($n: String!) { addDirector(name: $n) { id } }`,
				map[string]interface{}{"n": fmt.Sprintf("d%d", i)})
		}
		execOK(t, schema, `mutation { addMovie(name: "m", directorId: 1) { id } }`, nil)

		var out struct {
			Movies    []json.RawMessage `json:"movies"`
			Directors []json.RawMessage `json:"directors"`
		}
		require.NoError(t, json.Unmarshal([]byte(execOK(t, schema, `{ movies { id } directors { id } }`, nil)), &out))
		assert.Len(t, out.Movies, 9)
		assert.Len(t, out.Directors, 6)
	})

	t.Run("missing required argument is a validation error", func(t *testing.T) {
		schema, st := newTestSchema(t)

		resp := exec(t, schema, `mutation { addMovie(name: "X") { id } }`, nil)

		require.NotEmpty(t, resp.Errors)
		assert.Contains(t, resp.Errors[0].Message, "directorId")
		assert.Len(t, st.Movies(), 8)
	})

	t.Run("wrong argument type is a validation error", func(t *testing.T) {
		schema, st := newTestSchema(t)

		resp := exec(t, schema, `mutation { addDirector(name: 5) { id } }`, nil)

		require.NotEmpty(t, resp.Errors)
		assert.Len(t, st.Directors(), 3)
	})
}

func TestMaxDepth(t *testing.T) {
	schema, _ := newTestSchema(t, WithMaxDepth(3))

	t.Run("allows shallow documents", func(t *testing.T) {
		resp := exec(t, schema, `{ movies { id } }`, nil)

		assert.Empty(t, resp.Errors)
	})

	t.Run("rejects deep documents", func(t *testing.T) {
		resp := exec(t, schema, `{ movies { director { movies { director { id } } } } }`, nil)

		assert.NotEmpty(t, resp.Errors)
	})
}
