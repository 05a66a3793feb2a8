package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviegraph/core/internal/store"
)

func TestObserveRequest(t *testing.T) {
	m := New(store.NewSeeded())

	m.ObserveRequest("query", OutcomeOK, 5*time.Millisecond)
	m.ObserveRequest("query", OutcomeOK, 5*time.Millisecond)
	m.ObserveRequest("mutation", OutcomeError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("query", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("mutation", OutcomeError)))
}

func TestObserveRequestOnNil(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() { m.ObserveRequest("query", OutcomeOK, time.Second) })
}

func TestStoreGauges(t *testing.T) {
	st := store.NewSeeded()
	m := New(st)
	st.AddDirector("Tim")

	expected := `
# HELP moviegraph_store_directors Number of directors in the store.
# TYPE moviegraph_store_directors gauge
moviegraph_store_directors 4
# HELP moviegraph_store_movies Number of movies in the store.
# TYPE moviegraph_store_movies gauge
moviegraph_store_movies 8
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"moviegraph_store_directors", "moviegraph_store_movies")
	require.NoError(t, err)
}

func TestHandler(t *testing.T) {
	m := New(store.NewSeeded())
	m.ObserveRequest("query", OutcomeOK, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	m.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `moviegraph_graphql_requests_total{operation="query",outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "moviegraph_store_movies 8")
}
