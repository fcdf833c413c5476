package bookmarkfile

import (
	"fmt"
	"time"

	"minimarks/internal/domain"
)

// Mapper converts import entries into domain bookmarks for one author.
type Mapper struct{}

// NewMapper creates a mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts file entries to bookmarks owned by authorID.
// Entries without a URL are skipped; a missing name falls back to the
// normalized URL so imported rows still satisfy the non-empty-name rule.
func (m *Mapper) Map(f File, authorID int64, now time.Time) ([]*domain.Bookmark, error) {
	marks := make([]*domain.Bookmark, 0, len(f))

	for _, entry := range f {
		if entry.URL == "" {
			continue
		}
		url := domain.NormalizeURL(entry.URL)
		name := entry.Name
		if name == "" {
			name = url
		}

		marks = append(marks, &domain.Bookmark{
			AuthorID:      authorID,
			URL:           url,
			Name:          name,
			PostDate:      now,
			Public:        entry.Public,
			ThumbnailPath: domain.PlaceholderThumbnail,
		})
	}

	if len(marks) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in file")
	}

	return marks, nil
}
