package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/snippetd/snippetd/internal/httpserver/deps"
	"github.com/snippetd/snippetd/internal/httpserver/handlers"
)

func init() { Register(registerSnippets) }

func registerSnippets(r chi.Router, d deps.Deps) {
	r.Post("/snippets", handlers.CreateSnippet(d))
	r.Get("/snippets", handlers.ListSnippets(d))
	r.Get("/snippets/{id}", handlers.GetSnippet(d))
}
