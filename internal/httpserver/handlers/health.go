package handlers

import (
	"net/http"

	"github.com/snippetd/snippetd/internal/httpserver/deps"
)

type healthResponse struct {
	Status string `json:"status"`
}

func Health(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

// NotFound answers every unmatched route with the same JSON body.
func NotFound(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	}
}
