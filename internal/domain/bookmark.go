package domain

import (
	"strings"
	"time"
)

// PlaceholderThumbnail is the static thumbnail path stored with every
// bookmark. Real thumbnail generation is deliberately stubbed out.
const PlaceholderThumbnail = "/static/images/placeholder.svg"

// Bookmark represents one saved URL.
//
// A bookmark is owned by exactly one user, created once and never mutated;
// the only write after creation is deletion by its author.
type Bookmark struct {
	// ID is the canonical unique identifier.
	ID int64

	// AuthorID references the owning User.
	AuthorID int64

	// Author is the owner's username, populated on feed reads via join.
	// It is display metadata, not part of the stored row.
	Author string

	// URL is the saved link, normalized to carry a scheme.
	URL string

	// Name is the required description shown in feeds.
	Name string

	// PostDate is the creation timestamp, immutable.
	PostDate time.Time

	// Public controls visibility: private bookmarks are visible only to
	// their author.
	Public bool

	// ThumbnailPath is always PlaceholderThumbnail.
	ThumbnailPath string
}

// NewBookmark validates input and builds a bookmark for the given author.
// The URL gets "http://" prepended when it carries no recognized scheme.
func NewBookmark(author Viewer, rawURL, name string, public bool, now time.Time) (*Bookmark, error) {
	if !author.Authenticated() {
		return nil, ErrUnauthorized
	}
	rawURL = strings.TrimSpace(rawURL)
	name = strings.TrimSpace(name)
	if rawURL == "" {
		return nil, NewValidationError("You have to enter a URL")
	}
	if name == "" {
		return nil, NewValidationError("You need to add a name to this bookmark!")
	}

	return &Bookmark{
		AuthorID:      author.UserID(),
		Author:        author.User.Username,
		URL:           NormalizeURL(rawURL),
		Name:          name,
		PostDate:      now,
		Public:        public,
		ThumbnailPath: PlaceholderThumbnail,
	}, nil
}

// NormalizeURL prepends "http://" when the URL has no http(s) scheme.
func NormalizeURL(rawURL string) string {
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "http://" + rawURL
}
