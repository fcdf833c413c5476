package session

import (
	"context"
	"net/http"
	"time"
)

// CookieName is the session cookie carrying the opaque token.
const CookieName = "session_token"

// DefaultTTL is how long a login stays valid unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// Store maps opaque session tokens to user IDs.
//
// Tokens are random UUIDs; the cookie never carries the user ID itself.
type Store interface {
	// Create issues a new token bound to userID.
	Create(ctx context.Context, userID int64) (string, error)

	// Get resolves a token to the user ID it was issued for.
	// ok is false for unknown or expired tokens.
	Get(ctx context.Context, token string) (userID int64, ok bool, err error)

	// Delete invalidates a token. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error
}

// SetCookie writes the session cookie on the response.
func SetCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// TokenFromRequest extracts the session token from the request cookie.
// Empty string means no session.
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
