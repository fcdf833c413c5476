package store

import (
	"context"

	"minimarks/internal/domain"
)

// Store defines the persistence surface for users and bookmarks.
type Store interface {
	// Users
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Bookmarks
	CreateBookmark(ctx context.Context, b *domain.Bookmark) (int64, error)
	DeleteBookmark(ctx context.Context, bookmarkID, authorID int64) error
	ListBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Bookmark, error)
	ListPublicBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Bookmark, error)
	ListPublicBookmarks(ctx context.Context, limit int) ([]domain.Bookmark, error)

	Close() error
}
