package domain

import (
	"context"
	"fmt"
)

// DefaultPerPage bounds feed length when callers pass no explicit limit.
const DefaultPerPage = 30

// FeedStore is the read surface the feed resolver needs.
// *sqlstore.SQLStore satisfies it.
type FeedStore interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]Bookmark, error)
	ListPublicBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]Bookmark, error)
	ListPublicBookmarks(ctx context.Context, limit int) ([]Bookmark, error)
}

// Scope selects which bookmarks are eligible for a feed.
type Scope struct {
	kind     scopeKind
	username string
}

type scopeKind int

const (
	scopeOwn scopeKind = iota
	scopeUser
	scopePublic
)

// OwnScope is the viewer's own feed: every bookmark they authored,
// public or private. Requires an authenticated viewer.
func OwnScope() Scope { return Scope{kind: scopeOwn} }

// UserScope is a named user's public bookmarks.
func UserScope(username string) Scope { return Scope{kind: scopeUser, username: username} }

// PublicScope is the global public feed across all authors.
func PublicScope() Scope { return Scope{kind: scopePublic} }

func (s Scope) String() string {
	switch s.kind {
	case scopeOwn:
		return "own"
	case scopeUser:
		return "user:" + s.username
	default:
		return "public"
	}
}

// ListFeed resolves a feed for the viewer: the correctly filtered, ordered
// (post date descending) and truncated bookmark sequence for the scope.
//
// Errors: OwnScope with an anonymous viewer returns ErrUnauthorized;
// UserScope with an unknown username returns ErrNotFound.
func ListFeed(ctx context.Context, store FeedStore, viewer Viewer, scope Scope, limit int) ([]Bookmark, error) {
	if limit <= 0 {
		limit = DefaultPerPage
	}

	switch scope.kind {
	case scopeOwn:
		if !viewer.Authenticated() {
			return nil, ErrUnauthorized
		}
		marks, err := store.ListBookmarksByAuthor(ctx, viewer.UserID(), limit)
		if err != nil {
			return nil, fmt.Errorf("list own feed: %w", err)
		}
		return marks, nil

	case scopeUser:
		user, err := store.GetUserByUsername(ctx, scope.username)
		if err != nil {
			return nil, fmt.Errorf("resolve user %q: %w", scope.username, err)
		}
		marks, err := store.ListPublicBookmarksByAuthor(ctx, user.ID, limit)
		if err != nil {
			return nil, fmt.Errorf("list user feed: %w", err)
		}
		return marks, nil

	default:
		marks, err := store.ListPublicBookmarks(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("list public feed: %w", err)
		}
		return marks, nil
	}
}
