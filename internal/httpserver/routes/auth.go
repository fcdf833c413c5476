package routes

import (
	"github.com/go-chi/chi/v5"

	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/handlers"
	"minimarks/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Get("/login", handlers.LoginForm(d))
	r.Get("/register", handlers.RegisterForm(d))
	r.Get("/logout", handlers.Logout(d))

	// Credential submissions get a per-IP token bucket against brute force.
	limited := r.With(mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.LoginBurst,
		RefillPerMin: d.LoginRefillPerMin,
		TrustProxy:   d.TrustProxy,
	}))
	limited.Post("/login", handlers.Login(d))
	limited.Post("/register", handlers.Register(d))
}
