package rest

import (
	_ "embed"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// Index serves the upload page.
func Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML) //nolint:errcheck
}

// APIRoot handles GET /api.
func APIRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to Vocabulary App API"})
}
