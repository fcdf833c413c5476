package domain

import "time"

// User is a registered account.
//
// Rows are scanned into this struct at the store boundary; nothing outside
// the store layer touches raw SQL rows.
type User struct {
	// ID is the canonical unique identifier, assigned on creation.
	ID int64

	// Username is unique and immutable after registration.
	Username string

	// Email as entered at registration. Only checked for a minimal shape
	// (non-empty, contains '@').
	Email string

	// PasswordHash is the bcrypt hash of the password.
	// The plaintext is never stored or logged.
	PasswordHash string

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time
}

// Viewer is the identity on whose behalf a feed or mutation is requested.
// A nil *User means an anonymous visitor.
type Viewer struct {
	User *User
}

// Anonymous is the viewer for requests without a valid session.
var Anonymous = Viewer{}

// Authenticated reports whether the viewer is a logged-in user.
func (v Viewer) Authenticated() bool { return v.User != nil }

// UserID returns the viewer's user ID, or 0 for anonymous viewers.
func (v Viewer) UserID() int64 {
	if v.User == nil {
		return 0
	}
	return v.User.ID
}

// CanSee reports whether the viewer may see the given bookmark:
// the author always sees their own, everyone sees public ones.
func (v Viewer) CanSee(b *Bookmark) bool {
	if b.Public {
		return true
	}
	return v.User != nil && v.User.ID == b.AuthorID
}
