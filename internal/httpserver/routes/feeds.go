package routes

import (
	"github.com/go-chi/chi/v5"

	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/handlers"
)

func init() { Register(registerFeeds) }

func registerFeeds(r chi.Router, d deps.Deps) {
	r.Get("/", handlers.Home(d))
	r.Get("/public", handlers.PublicFeed(d))
	// Namespaced under /u/ so usernames can never shadow reserved routes.
	r.Get("/u/{username}", handlers.UserFeed(d))
}
