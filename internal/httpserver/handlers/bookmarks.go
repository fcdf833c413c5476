package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"minimarks/internal/domain"
	"minimarks/internal/httpserver/deps"
	"minimarks/internal/httpserver/mw"
	"minimarks/internal/logger"
	"minimarks/internal/web"
)

// AddBookmark creates a bookmark for the session user from the feed form.
// Validation failures re-render the own feed with an inline message.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if !viewer.Authenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		rawURL := r.PostFormValue("url")
		desc := r.PostFormValue("desc")
		public := r.PostFormValue("public") != ""

		b, err := domain.NewBookmark(viewer, rawURL, desc, public, d.Now())
		if err != nil {
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				marks, ferr := domain.ListFeed(r.Context(), d.Store, viewer, domain.OwnScope(), d.PerPage)
				if ferr != nil {
					d.Logger.Error("own feed failed", logger.Error(ferr))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				renderFeed(w, d, web.Page{
					Title:       "My bookmarks",
					Viewer:      viewer,
					Bookmarks:   marks,
					ShowAddForm: true,
					Error:       ve.Message,
					Form:        map[string]string{"url": rawURL, "desc": desc, "public": r.PostFormValue("public")},
				})
				return
			}
			d.Logger.Error("add bookmark failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		id, err := d.Store.CreateBookmark(r.Context(), b)
		if err != nil {
			d.Logger.Error("store bookmark failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		d.Logger.Debug("bookmark added",
			logger.Int64("id", id),
			logger.String("url", b.URL),
			logger.String("author", viewer.User.Username))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// DeleteBookmark removes a bookmark owned by the session user.
// Missing or not-owned bookmarks are a silent no-op.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if !viewer.Authenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid bookmark ID", http.StatusBadRequest)
			return
		}

		err = d.Store.DeleteBookmark(r.Context(), id, viewer.UserID())
		switch {
		case err == nil:
			d.Logger.Debug("bookmark deleted",
				logger.Int64("id", id),
				logger.String("author", viewer.User.Username))
		case errors.Is(err, domain.ErrNotFound):
			// Nonexistent or not owned: no-op, matching the historical behavior.
			d.Logger.Debug("delete skipped, bookmark missing or not owned",
				logger.Int64("id", id))
		default:
			d.Logger.Error("delete bookmark failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, "/", http.StatusFound)
	}
}

// SaveBookmarklet creates a bookmark from query parameters, for the
// "save this page" bookmarklet. Replies 204 with an empty body so the
// browser stays on the page being saved.
func SaveBookmarklet(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := mw.ViewerFromContext(r.Context())
		if !viewer.Authenticated() {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		b, err := domain.NewBookmark(viewer, q.Get("url"), q.Get("title"), false, d.Now())
		if err != nil {
			if domain.IsValidation(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			d.Logger.Error("bookmarklet save failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if _, err := d.Store.CreateBookmark(r.Context(), b); err != nil {
			d.Logger.Error("store bookmark failed", logger.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		d.Logger.Debug("bookmarklet saved",
			logger.String("url", b.URL),
			logger.String("source", q.Get("source")))
		w.WriteHeader(http.StatusNoContent)
	}
}
