package routes

import (
	"github.com/go-chi/chi/v5"

	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/handlers"
	"minimarks/internal/web"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Handle("/static/*", web.StaticHandler())
}
