// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/dgraph-io/gqlparser/v2/ast"
	"github.com/dgraph-io/gqlparser/v2/parser"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Request is a GraphQL request as sent by clients over HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Operation types reported by operationType.
const (
	OperationQuery        = "query"
	OperationMutation     = "mutation"
	OperationSubscription = "subscription"
	OperationUnknown      = "unknown"
)

var (
	errMissingQuery    = errors.New("no query string supplied in request")
	errMethod          = errors.New("unrecognised request method, please use GET or POST for GraphQL requests")
	errContentType     = errors.New("unrecognised Content-Type, please use application/json for GraphQL requests")
	errMutationOverGET = errors.New("can only perform a mutation operation from a POST request")
)

func readRequest(r *http.Request) (*Request, error) {
	req := &Request{}

	switch r.Method {
	case http.MethodGet:
		query := r.URL.Query()
		req.Query = query.Get("query")
		req.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &req.Variables); err != nil {
				return nil, errors.Wrap(err, "not a valid GraphQL request")
			}
		}
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, errors.Wrap(err, "unable to parse media type")
		}
		if mediaType != "application/json" {
			return nil, errContentType
		}

		body := r.Body
		if r.Header.Get("Content-Encoding") == "gzip" {
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				return nil, errors.Wrap(err, "unable to parse gzip")
			}
			defer zr.Close()
			body = zr
		}
		if err := json.NewDecoder(body).Decode(req); err != nil {
			return nil, errors.Wrap(err, "not a valid GraphQL request body")
		}
	default:
		return nil, errMethod
	}

	if strings.TrimSpace(req.Query) == "" {
		return nil, errMissingQuery
	}
	return req, nil
}

// operationType reports the type of the operation req would execute. Documents
// that do not parse, or do not select a single operation, are "unknown" and
// left to the executor to report.
func operationType(req *Request) string {
	doc, gqlErr := parser.ParseQuery(&ast.Source{Input: req.Query})
	if gqlErr != nil {
		return OperationUnknown
	}

	op := doc.Operations.ForName(req.OperationName)
	if op == nil {
		return OperationUnknown
	}

	switch op.Operation {
	case ast.Query:
		return OperationQuery
	case ast.Mutation:
		return OperationMutation
	case ast.Subscription:
		return OperationSubscription
	default:
		return OperationUnknown
	}
}
