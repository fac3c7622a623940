package auth_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"parley/internal/pkg/auth"
)

// memStore implements auth.Store in memory.
type memStore struct {
	mu       sync.Mutex
	seq      int
	accounts map[string]auth.Account // keyed by lowercase email
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]auth.Account)}
}

func (s *memStore) Create(_ context.Context, name, email, passwordHash string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := s.accounts[key]; ok {
		return nil, auth.ErrEmailTaken
	}
	s.seq++
	a := auth.Account{
		ID:           fmt.Sprintf("acct-%d", s.seq),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.accounts[key] = a
	out := a
	return &out, nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return nil, auth.ErrBadCredentials
	}
	out := a
	return &out, nil
}

var _ auth.Store = (*memStore)(nil)

func newTestService() *auth.Service {
	return auth.NewService(newMemStore(), auth.NewSessions(newMemCache(), time.Hour))
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	profile, err := svc.Signup(ctx, "Alice", "Alice@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("email not normalized: %q", profile.Email)
	}

	token, loggedIn, err := svc.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != profile.ID {
		t.Fatalf("login returned wrong profile: %+v", loggedIn)
	}

	userID, err := svc.Sessions.Resolve(ctx, token)
	if err != nil || userID != profile.ID {
		t.Fatalf("session should resolve to the account: %v %q", err, userID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, auth.ErrBadCredentials) {
		t.Fatalf("wrong password: expected ErrBadCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret"); !errors.Is(err, auth.ErrBadCredentials) {
		t.Fatalf("unknown email: expected ErrBadCredentials, got %v", err)
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, err := svc.Signup(ctx, "Other", "ALICE@example.com", "different"); !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestSignupValidatesInput(t *testing.T) {
	svc := newTestService()
	cases := [][3]string{
		{"", "alice@example.com", "pw"},
		{"Alice", "", "pw"},
		{"Alice", "alice@example.com", ""},
	}
	for _, c := range cases {
		if _, err := svc.Signup(context.Background(), c[0], c[1], c[2]); !errors.Is(err, auth.ErrInvalidInput) {
			t.Fatalf("input %v: expected ErrInvalidInput, got %v", c, err)
		}
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	if _, err := svc.Signup(ctx, "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("signup: %v", err)
	}
	token, _, err := svc.Login(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Sessions.Resolve(ctx, token); !errors.Is(err, auth.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after logout, got %v", err)
	}
}
