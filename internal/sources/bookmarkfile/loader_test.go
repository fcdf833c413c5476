package bookmarkfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeTempFile(t, `
- url: https://example.com
  name: Example
  public: true
- url: blog.example.com
  name: A blog
`)

	f, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(f) != 2 {
		t.Fatalf("got %d entries, want 2", len(f))
	}
	if f[0].URL != "https://example.com" || f[0].Name != "Example" || !f[0].Public {
		t.Errorf("unexpected first entry: %+v", f[0])
	}
	if f[1].Public {
		t.Error("public should default to false")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader("/nonexistent/bookmarks.yaml").Load()
	if err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestLoaderInvalidYAML(t *testing.T) {
	path := writeTempFile(t, "{{ not yaml")
	_, err := NewLoader(path).Load()
	if err == nil {
		t.Error("Load() of invalid yaml should fail")
	}
}
