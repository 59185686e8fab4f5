package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/snippetd/snippetd/internal/httpserver/deps"
	"github.com/snippetd/snippetd/internal/logger"
	"github.com/snippetd/snippetd/internal/snippet"
)

type createSnippetRequest struct {
	// Unknown body fields are accepted and ignored.
	Text string `json:"text"`
}

type createSnippetResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

type snippetResponse struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Summary string `json:"summary"`
}

// CreateSnippet handles POST /snippets.
func CreateSnippet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSnippetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			// An unreadable body carries no usable text either way.
			writeError(w, http.StatusBadRequest, msgTextRequired)
			return
		}

		created, err := d.Snippets.Create(r.Context(), req.Text)
		if err != nil {
			switch {
			case errors.Is(err, snippet.ErrTextRequired):
				writeError(w, http.StatusBadRequest, msgTextRequired)
			case errors.Is(err, snippet.ErrThrottled):
				writeError(w, http.StatusServiceUnavailable, msgRateLimited)
			default:
				writeError(w, http.StatusInternalServerError, msgSummaryFailed)
			}
			return
		}

		writeJSON(w, http.StatusCreated, createSnippetResponse{
			ID:      created.ID.Hex(),
			Summary: created.Summary,
		})
	}
}

// GetSnippet handles GET /snippets/{id}. A structurally invalid id gets the
// generic 404 body; a well-formed id with no record gets the snippet-specific
// one. The id format check stays here so the service can keep folding both
// cases into one outcome.
func GetSnippet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !primitive.IsValidObjectID(id) {
			writeError(w, http.StatusNotFound, msgNotFound)
			return
		}

		found, err := d.Snippets.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, msgSnippetNotFound)
			return
		}

		writeJSON(w, http.StatusOK, snippetResponse{
			ID:      found.ID.Hex(),
			Text:    found.Text,
			Summary: found.Summary,
		})
	}
}

// ListSnippets handles GET /snippets. The empty result is `[]`, never null.
func ListSnippets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := d.Snippets.List(r.Context())
		if err != nil {
			d.Logger.Error("list snippets failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, msgListFailed)
			return
		}

		resp := make([]snippetResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, snippetResponse{
				ID:      item.ID.Hex(),
				Text:    item.Text,
				Summary: item.Summary,
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
