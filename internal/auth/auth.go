package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"minimarks/internal/domain"
	"minimarks/internal/store"
)

// RegisterInput is the raw registration form input.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// Register validates the input and creates the account. The checks run in
// order and the first failure wins, so the user sees one message at a time.
// A successful registration does NOT log the caller in.
func Register(ctx context.Context, s store.Store, in RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	switch {
	case in.Username == "":
		return nil, domain.NewValidationError("You have to enter a username")
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return nil, domain.NewValidationError("You have to enter a valid email address")
	case in.Password == "":
		return nil, domain.NewValidationError("You have to enter a password")
	case in.Password != in.Confirm:
		return nil, domain.NewValidationError("The two passwords do not match")
	}

	_, err := s.GetUserByUsername(ctx, in.Username)
	if err == nil {
		return nil, domain.NewValidationError("The username is already taken")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.CreateUser(ctx, in.Username, in.Email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &domain.User{
		ID:           id,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}, nil
}

// Authenticate verifies the credentials and returns the user on success.
// Unknown username and wrong password both yield ErrInvalidCredentials;
// the caller never learns which check failed.
func Authenticate(ctx context.Context, s store.Store, username, password string) (*domain.User, error) {
	user, err := s.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
