// Package auth implements local mock accounts: a bcrypt-hashed password
// per email and a single signed-in user recorded in the store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/skillpath/skillpath/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
)

// ValidationError reports a rejected signup field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minPasswordLen = 6

// Service handles signup, login and logout against a store.
type Service struct {
	store store.Store
	cost  int
}

// New creates a Service. cost is the bcrypt cost; 0 uses bcrypt.DefaultCost.
func New(s store.Store, cost int) *Service {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{store: s, cost: cost}
}

// Signup registers a new user and signs them in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*store.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "is required"}
	}
	addr, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &store.User{Name: name, Email: addr, PasswordHash: string(hash)}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	if err := s.store.SetCurrentUser(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return u, nil
}

// Login checks the password and records the user as signed in.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, error) {
	u, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.store.SetCurrentUser(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return u, nil
}

// Logout clears the signed-in user.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.SetCurrentUser(ctx, "")
}

// Current returns the signed-in user or ErrNotSignedIn.
func (s *Service) Current(ctx context.Context) (*store.User, error) {
	u, err := s.store.CurrentUser(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	return u, err
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &ValidationError{Field: "email", Message: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", &ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return strings.ToLower(addr.Address), nil
}
