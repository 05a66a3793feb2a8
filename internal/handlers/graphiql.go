package handlers

import (
	_ "embed"
	"net/http"
)

//go:embed assets/graphiql.html
var graphiqlPage []byte

// GraphiQLHandler serves the interactive query explorer. The page posts its
// queries back to the URL it was loaded from.
func GraphiQLHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(graphiqlPage)
}
