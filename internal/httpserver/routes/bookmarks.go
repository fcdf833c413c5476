package routes

import (
	"github.com/go-chi/chi/v5"

	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Post("/add_bookmark", handlers.AddBookmark(d))
	r.Get("/del_bookmark/{id}", handlers.DeleteBookmark(d))
	r.Get("/save", handlers.SaveBookmarklet(d))
}
