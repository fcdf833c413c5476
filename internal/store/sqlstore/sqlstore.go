package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minimarks/internal/domain"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DBType represents the type of database
type DBType string

const (
	SQLite   DBType = "sqlite3"
	Postgres DBType = "postgres"
)

// SQLStore implements store.Store for SQLite and PostgreSQL.
type SQLStore struct {
	db     *sql.DB
	dbType DBType
}

// New opens the database, verifies connectivity and bootstraps the schema.
func New(driver, connStr string) (*SQLStore, error) {
	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLStore{
		db:     db,
		dbType: DBType(driver),
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL
func (s *SQLStore) rebind(query string) string {
	if s.dbType == SQLite {
		return query
	}
	var result strings.Builder
	argNum := 1
	for _, c := range query {
		if c == '?' {
			result.WriteString(fmt.Sprintf("$%d", argNum))
			argNum++
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}

func (s *SQLStore) initSchema() error {
	var createUsersTable, createBookmarksTable string

	if s.dbType == Postgres {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`

		createBookmarksTable = `
		CREATE TABLE IF NOT EXISTS bookmarks (
			id SERIAL PRIMARY KEY,
			author_id INTEGER NOT NULL REFERENCES users(id),
			url TEXT NOT NULL,
			name TEXT NOT NULL,
			post_date TIMESTAMP NOT NULL,
			is_public BOOLEAN NOT NULL,
			thumbnail_path TEXT NOT NULL
		);`
	} else {
		createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`

		createBookmarksTable = `
		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			author_id INTEGER NOT NULL,
			url TEXT NOT NULL,
			name TEXT NOT NULL,
			post_date DATETIME NOT NULL,
			is_public BOOLEAN NOT NULL,
			thumbnail_path TEXT NOT NULL,
			FOREIGN KEY(author_id) REFERENCES users(id)
		);`
	}

	for _, stmt := range []string{createUsersTable, createBookmarksTable} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// User functions

func (s *SQLStore) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	const q = "INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)"
	if s.dbType == Postgres {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(q+" RETURNING id"), username, email, passwordHash).Scan(&id)
		return id, err
	}
	result, err := s.db.ExecContext(ctx, s.rebind(q), username, email, passwordHash)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (s *SQLStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?"), id))
}

func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?"), username))
}

func (s *SQLStore) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Bookmark functions

func (s *SQLStore) CreateBookmark(ctx context.Context, b *domain.Bookmark) (int64, error) {
	const q = "INSERT INTO bookmarks (author_id, url, name, post_date, is_public, thumbnail_path) VALUES (?, ?, ?, ?, ?, ?)"
	if s.dbType == Postgres {
		var id int64
		err := s.db.QueryRowContext(ctx, s.rebind(q+" RETURNING id"),
			b.AuthorID, b.URL, b.Name, b.PostDate, b.Public, b.ThumbnailPath).Scan(&id)
		return id, err
	}
	result, err := s.db.ExecContext(ctx, s.rebind(q),
		b.AuthorID, b.URL, b.Name, b.PostDate, b.Public, b.ThumbnailPath)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// DeleteBookmark removes a bookmark only when the caller owns it.
// Deleting a missing or not-owned bookmark returns domain.ErrNotFound;
// callers that want the silent no-op behavior check for it.
func (s *SQLStore) DeleteBookmark(ctx context.Context, bookmarkID, authorID int64) error {
	result, err := s.db.ExecContext(ctx,
		s.rebind("DELETE FROM bookmarks WHERE id = ? AND author_id = ?"), bookmarkID, authorID)
	if err != nil {
		return err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const feedSelect = `SELECT b.id, b.author_id, u.username, b.url, b.name, b.post_date, b.is_public, b.thumbnail_path
	FROM bookmarks b JOIN users u ON b.author_id = u.id`

func (s *SQLStore) ListBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Bookmark, error) {
	return s.listBookmarks(ctx,
		feedSelect+" WHERE b.author_id = ? ORDER BY b.post_date DESC, b.id DESC LIMIT ?",
		authorID, limit)
}

func (s *SQLStore) ListPublicBookmarksByAuthor(ctx context.Context, authorID int64, limit int) ([]domain.Bookmark, error) {
	return s.listBookmarks(ctx,
		feedSelect+" WHERE b.author_id = ? AND b.is_public = ? ORDER BY b.post_date DESC, b.id DESC LIMIT ?",
		authorID, true, limit)
}

func (s *SQLStore) ListPublicBookmarks(ctx context.Context, limit int) ([]domain.Bookmark, error) {
	return s.listBookmarks(ctx,
		feedSelect+" WHERE b.is_public = ? ORDER BY b.post_date DESC, b.id DESC LIMIT ?",
		true, limit)
}

func (s *SQLStore) listBookmarks(ctx context.Context, query string, args ...interface{}) ([]domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marks []domain.Bookmark
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.ID, &b.AuthorID, &b.Author, &b.URL, &b.Name, &b.PostDate, &b.Public, &b.ThumbnailPath); err != nil {
			return nil, err
		}
		marks = append(marks, b)
	}
	return marks, rows.Err()
}
