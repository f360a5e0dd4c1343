package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/skillpath/skillpath/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s, bcrypt.MinCost)
}

func TestSignupLoginLogout(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, "  Priya ", "Priya@Example.com", "hunter22")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if u.Name != "Priya" || u.Email != "priya@example.com" {
		t.Errorf("user = %+v", u)
	}
	if u.PasswordHash == "hunter22" {
		t.Error("password stored in plain text")
	}

	cur, err := svc.Current(ctx)
	if err != nil || cur.ID != u.ID {
		t.Fatalf("Current after signup = %+v, %v", cur, err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Current(ctx); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("Current after logout err = %v", err)
	}

	if _, err := svc.Login(ctx, "priya@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
	got, err := svc.Login(ctx, "PRIYA@example.com", "hunter22")
	if err != nil || got.ID != u.ID {
		t.Fatalf("Login = %+v, %v", got, err)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name, email, password string
		field                 string
	}{
		{"", "a@example.com", "secret1", "name"},
		{"A", "", "secret1", "email"},
		{"A", "not-an-email", "secret1", "email"},
		{"A", "Bob <bob@example.com>", "secret1", "email"},
		{"A", "a@example.com", "short", "password"},
	}
	for _, tt := range tests {
		_, err := svc.Signup(ctx, tt.name, tt.email, tt.password)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != tt.field {
			t.Errorf("Signup(%q, %q, %q) err = %v, want %s validation error", tt.name, tt.email, tt.password, err, tt.field)
		}
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	if _, err := svc.Signup(ctx, "A", "a@example.com", "secret1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Signup(ctx, "B", "A@example.com", "secret2"); !errors.Is(err, store.ErrEmailTaken) {
		t.Errorf("duplicate err = %v, want ErrEmailTaken", err)
	}
}
