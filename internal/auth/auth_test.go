package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"minimarks/internal/domain"
)

// fakeStore implements store.Store backed by a map.
type fakeStore struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*domain.User)}
}

func (f *fakeStore) CreateUser(_ context.Context, username, email, passwordHash string) (int64, error) {
	f.nextID++
	f.users[username] = &domain.User{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	return f.nextID, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) CreateBookmark(context.Context, *domain.Bookmark) (int64, error) { return 0, nil }
func (f *fakeStore) DeleteBookmark(context.Context, int64, int64) error              { return nil }
func (f *fakeStore) ListBookmarksByAuthor(context.Context, int64, int) ([]domain.Bookmark, error) {
	return nil, nil
}
func (f *fakeStore) ListPublicBookmarksByAuthor(context.Context, int64, int) ([]domain.Bookmark, error) {
	return nil, nil
}
func (f *fakeStore) ListPublicBookmarks(context.Context, int) ([]domain.Bookmark, error) {
	return nil, nil
}
func (f *fakeStore) Close() error { return nil }

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		wantMsg string
	}{
		{
			name:    "empty username",
			input:   RegisterInput{Email: "a@x.com", Password: "pw", Confirm: "pw"},
			wantMsg: "You have to enter a username",
		},
		{
			name:    "empty email",
			input:   RegisterInput{Username: "a", Password: "pw", Confirm: "pw"},
			wantMsg: "You have to enter a valid email address",
		},
		{
			name:    "email without at sign",
			input:   RegisterInput{Username: "a", Email: "nope", Password: "pw", Confirm: "pw"},
			wantMsg: "You have to enter a valid email address",
		},
		{
			name:    "empty password",
			input:   RegisterInput{Username: "a", Email: "a@x.com", Confirm: "pw"},
			wantMsg: "You have to enter a password",
		},
		{
			name:    "mismatched confirmation",
			input:   RegisterInput{Username: "a", Email: "a@x.com", Password: "pw", Confirm: "other"},
			wantMsg: "The two passwords do not match",
		},
		{
			// First violation wins even when several fields are bad
			name:    "multiple violations reports the first",
			input:   RegisterInput{Email: "nope"},
			wantMsg: "You have to enter a username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Register(context.Background(), newFakeStore(), tt.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Register() error = %v, want ValidationError", err)
			}
			if ve.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", ve.Message, tt.wantMsg)
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	s := newFakeStore()
	in := RegisterInput{Username: "bob", Email: "bob@x.com", Password: "pw", Confirm: "pw"}

	if _, err := Register(context.Background(), s, in); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}

	_, err := Register(context.Background(), s, in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("second Register() error = %v, want ValidationError", err)
	}
	if ve.Message != "The username is already taken" {
		t.Errorf("message = %q, want username taken", ve.Message)
	}
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	s := newFakeStore()
	user, err := Register(context.Background(), s, RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "secret", Confirm: "secret",
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if user.PasswordHash == "secret" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	s := newFakeStore()
	if _, err := Register(context.Background(), s, RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "correct", Confirm: "correct",
	}); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	t.Run("wrong password", func(t *testing.T) {
		_, err := Authenticate(context.Background(), s, "alice", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := Authenticate(context.Background(), s, "nobody", "correct")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("valid credentials", func(t *testing.T) {
		user, err := Authenticate(context.Background(), s, "alice", "correct")
		if err != nil {
			t.Fatalf("Authenticate() failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Username = %q, want alice", user.Username)
		}
	})
}
