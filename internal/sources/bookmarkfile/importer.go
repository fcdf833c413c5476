package bookmarkfile

import (
	"context"
	"fmt"
	"time"

	"minimarks/internal/logger"
	"minimarks/internal/store"
)

// Import loads the bookmarks file and stores its entries for the named user.
// Returns the number of imported bookmarks. The user must already exist.
func Import(ctx context.Context, s store.Store, log logger.Logger, path, username string) (int, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("resolve import user %q: %w", username, err)
	}

	file, err := NewLoader(path).Load()
	if err != nil {
		return 0, err
	}

	marks, err := NewMapper().Map(file, user.ID, time.Now())
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, b := range marks {
		if _, err := s.CreateBookmark(ctx, b); err != nil {
			return imported, fmt.Errorf("import bookmark %q: %w", b.URL, err)
		}
		imported++
	}

	log.Info("bookmarks imported",
		logger.String("file", path),
		logger.String("username", username),
		logger.Int("count", imported))
	return imported, nil
}
