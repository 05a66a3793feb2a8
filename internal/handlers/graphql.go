// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/moviegraph/core/internal/logging"
	"github.com/moviegraph/core/internal/metrics"
)

// GraphQLHandler executes GraphQL requests against Schema. GET requests
// without a query are answered with the GraphiQL explorer when enabled.
type GraphQLHandler struct {
	Schema   *graphql.Schema
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	GraphiQL bool
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Query().Get("query") == "" && h.GraphiQL && acceptsHTML(r) {
		GraphiQLHandler(w, r)
		return
	}

	start := time.Now()
	logger := logging.FromContext(r.Context(), h.Logger)

	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, errMethod)
		return
	}

	req, err := readRequest(r)
	if err != nil {
		h.Metrics.ObserveRequest(OperationUnknown, metrics.OutcomeInvalidRequest, time.Since(start))
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	op := operationType(req)
	if r.Method == http.MethodGet && op == OperationMutation {
		h.Metrics.ObserveRequest(op, metrics.OutcomeInvalidRequest, time.Since(start))
		w.Header().Set("Allow", "POST")
		writeError(w, r, http.StatusMethodNotAllowed, errMutationOverGET)
		return
	}

	resp := h.Schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	outcome := metrics.OutcomeOK
	if len(resp.Errors) > 0 {
		outcome = metrics.OutcomeError
		logger.Debug("graphql request returned errors",
			zap.String("operation", op),
			zap.String("operation_name", req.OperationName),
			zap.Int("errors", len(resp.Errors)),
			zap.String("first_error", resp.Errors[0].Message))
	}
	h.Metrics.ObserveRequest(op, outcome, time.Since(start))

	write(w, r, http.StatusOK, resp, logger)
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// writeError answers with a GraphQL shaped error list so clients can handle
// transport and execution errors the same way.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := &graphql.Response{
		Errors: []*gqlerrors.QueryError{gqlerrors.Errorf("%s", err.Error())},
	}
	write(w, r, status, resp, nil)
}

func write(w http.ResponseWriter, r *http.Request, status int, v interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")

	var out io.Writer = w
	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gzw := gzip.NewWriter(w)
		defer gzw.Close()
		out = gzw
	}
	w.WriteHeader(status)

	encoder := json.NewEncoder(out)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil && logger != nil {
		logger.Warn("error encoding response", zap.Error(err))
	}
}
