package mw

import (
	"context"
	"errors"
	"net/http"

	"minimarks/internal/domain"
	"minimarks/internal/logger"
	"minimarks/internal/session"
	"minimarks/internal/store"
)

type contextKey string

const viewerKey contextKey = "viewer"

// Viewer resolves the session cookie to a viewer identity and stores it in
// the request context. Requests without a valid session proceed as anonymous;
// this middleware never rejects anything. Handlers that require authentication
// check the viewer themselves.
func Viewer(sessions session.Store, s store.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := domain.Anonymous

			if token := session.TokenFromRequest(r); token != "" {
				userID, ok, err := sessions.Get(r.Context(), token)
				if err != nil {
					log.Warn("session lookup failed", logger.Error(err))
				}
				if ok {
					user, err := s.GetUserByID(r.Context(), userID)
					switch {
					case err == nil:
						viewer = domain.Viewer{User: user}
					case errors.Is(err, domain.ErrNotFound):
						// Stale session for a user that no longer exists.
						_ = sessions.Delete(r.Context(), token)
						session.ClearCookie(w)
					default:
						log.Warn("viewer lookup failed",
							logger.Int64("user_id", userID),
							logger.Error(err))
					}
				}
			}

			ctx := context.WithValue(r.Context(), viewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ViewerFromContext retrieves the viewer bound by the Viewer middleware.
// Returns the anonymous viewer when none was bound.
func ViewerFromContext(ctx context.Context) domain.Viewer {
	if v, ok := ctx.Value(viewerKey).(domain.Viewer); ok {
		return v
	}
	return domain.Anonymous
}
