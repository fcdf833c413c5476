package handlers

import (
	"errors"
	"net/http"

	"minimarks/internal/auth"
	"minimarks/internal/domain"
	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/mw"
	"minimarks/internal/logger"
	"minimarks/internal/session"
	"minimarks/internal/web"
)

// LoginForm renders the login page. Logged-in viewers go straight home.
func LoginForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if viewer.Authenticated() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		renderPage(w, d, "login", web.Page{Title: "Log in", Viewer: viewer})
	}
}

// Login authenticates the credentials and establishes a session.
// Failures re-render the form with a single generic message.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if viewer.Authenticated() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		username := r.PostFormValue("username")
		user, err := auth.Authenticate(r.Context(), d.Store, username, r.PostFormValue("password"))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				renderPage(w, d, "login", web.Page{
					Title:  "Log in",
					Viewer: viewer,
					Error:  err.Error(),
					Form:   map[string]string{"username": username},
				})
				return
			}
			d.Logger.Error("login failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		token, err := d.Sessions.Create(r.Context(), user.ID)
		if err != nil {
			d.Logger.Error("session create failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		session.SetCookie(w, token, d.SessionTTL)

		d.Logger.Info("user logged in", logger.String("username", user.Username))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// RegisterForm renders the registration page.
func RegisterForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if viewer.Authenticated() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		renderPage(w, d, "register", web.Page{Title: "Register", Viewer: viewer})
	}
}

// Register creates the account and sends the user to the login page.
// Registration does not log the caller in.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if viewer.Authenticated() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		in := auth.RegisterInput{
			Username: r.PostFormValue("username"),
			Email:    r.PostFormValue("email"),
			Password: r.PostFormValue("password"),
			Confirm:  r.PostFormValue("password2"),
		}

		user, err := auth.Register(r.Context(), d.Store, in)
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				renderPage(w, d, "register", web.Page{
					Title:  "Register",
					Viewer: viewer,
					Error:  ve.Message,
					Form:   map[string]string{"username": in.Username, "email": in.Email},
				})
				return
			}
			d.Logger.Error("registration failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		d.Logger.Info("user registered", logger.String("username", user.Username))
		http.Redirect(w, r, "/login", http.StatusFound)
	}
}

// Logout deletes the session and clears the cookie.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token := session.TokenFromRequest(r); token != "" {
			if err := d.Sessions.Delete(r.Context(), token); err != nil {
				d.Logger.Warn("session delete failed", logger.Error(err))
			}
		}
		session.ClearCookie(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func renderPage(w http.ResponseWriter, d deps.Deps, name string, page web.Page) {
	if err := d.Renderer.Render(w, http.StatusOK, name, page); err != nil {
		d.Logger.Error("render page failed",
			logger.String("template", name),
			logger.Error(err))
	}
}
