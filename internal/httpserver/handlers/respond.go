package handlers

import (
	"encoding/json"
	"net/http"
)

// Fixed client-facing messages. Responses carry exactly these strings and
// never raw error text, connection strings or credentials.
const (
	msgTextRequired    = "Text is required"
	msgRateLimited     = "AI service rate limit reached. Please try again later."
	msgSummaryFailed   = "Failed to generate summary."
	msgNotFound        = "Not found"
	msgSnippetNotFound = "Snippet not found"
	msgListFailed      = "Failed to retrieve snippets."
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
