package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"minimarks/internal/domain"
	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/mw"
	"minimarks/internal/logger"
	"minimarks/internal/web"
)

// Home shows the viewer's own feed, or redirects anonymous visitors to the
// public feed.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if !viewer.Authenticated() {
			http.Redirect(w, r, "/public", http.StatusFound)
			return
		}

		marks, err := domain.ListFeed(r.Context(), d.Store, viewer, domain.OwnScope(), d.PerPage)
		if err != nil {
			d.Logger.Error("own feed failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		renderFeed(w, d, web.Page{
			Title:       "My bookmarks",
			Viewer:      viewer,
			Bookmarks:   marks,
			ShowAddForm: true,
		})
	}
}

// PublicFeed shows the latest public bookmarks across all users.
func PublicFeed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())

		marks, err := domain.ListFeed(r.Context(), d.Store, viewer, domain.PublicScope(), d.PerPage)
		if err != nil {
			d.Logger.Error("public feed failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		renderFeed(w, d, web.Page{
			Title:     "Public bookmarks",
			Viewer:    viewer,
			Bookmarks: marks,
		})
	}
}

// UserFeed shows a named user's public bookmarks; 404 for unknown users.
func UserFeed(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		username := chi.URLParam(r, "username")

		marks, err := domain.ListFeed(r.Context(), d.Store, viewer, domain.UserScope(username), d.PerPage)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			d.Logger.Error("user feed failed",
				logger.String("username", username),
				logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		renderFeed(w, d, web.Page{
			Title:     username + "'s bookmarks",
			Viewer:    viewer,
			Bookmarks: marks,
		})
	}
}

func renderFeed(w http.ResponseWriter, d deps.Deps, page web.Page) {
	if err := d.Renderer.Render(w, http.StatusOK, "feed", page); err != nil {
		d.Logger.Error("render feed failed", logger.Error(err))
	}
}
