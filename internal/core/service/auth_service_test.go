package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/askdesk/askdesk/internal/core/domain"
)

type stubCredentialStore struct {
	users map[string]string
	err   error
	calls int
}

func (s *stubCredentialStore) Verify(_ context.Context, username, password string) (bool, error) {
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	pw, ok := s.users[username]
	return ok && pw == password, nil
}

type stubLimiter struct {
	allowed  bool
	allowErr error
	failures map[string]int
	resets   int
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{allowed: true, failures: make(map[string]int)}
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) { return l.allowed, l.allowErr }

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	l.failures[username]++
	return nil
}

func (l *stubLimiter) Reset(context.Context, string) error {
	l.resets++
	return nil
}

func newTestAuthService(t *testing.T, store *stubCredentialStore, limiter *stubLimiter) (*AuthService, *JWTService) {
	t.Helper()
	tokens, err := NewJWTService("secret", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTService: %v", err)
	}
	if limiter == nil {
		return NewAuthService(store, tokens, nil, zerolog.Nop()), tokens
	}
	return NewAuthService(store, tokens, limiter, zerolog.Nop()), tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	store := &stubCredentialStore{users: map[string]string{"demo": "test123"}}
	svc, tokens := newTestAuthService(t, store, nil)

	token, err := svc.Login(context.Background(), "demo", "test123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	subject, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != "demo" {
		t.Fatalf("expected subject demo, got %q", subject)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	store := &stubCredentialStore{users: map[string]string{"demo": "test123"}}
	svc, _ := newTestAuthService(t, store, nil)

	_, wrongPw := svc.Login(context.Background(), "demo", "nope")
	_, unknown := svc.Login(context.Background(), "ghost", "test123")

	if !errors.Is(wrongPw, domain.ErrInvalidCredentials) || !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPw, unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("unknown user and wrong password must look the same: %q vs %q", wrongPw, unknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	store := &stubCredentialStore{}
	svc, _ := newTestAuthService(t, store, nil)

	for _, tc := range [][2]string{{"", "pw"}, {"demo", ""}, {"  ", "pw"}} {
		if _, err := svc.Login(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrBadInput) {
			t.Fatalf("%q/%q: expected ErrBadInput, got %v", tc[0], tc[1], err)
		}
	}
	if store.calls != 0 {
		t.Fatalf("store should not be consulted for missing fields")
	}
}

func TestAuthService_Login_StoreError(t *testing.T) {
	store := &stubCredentialStore{err: errors.New("mongo down")}
	svc, _ := newTestAuthService(t, store, nil)

	_, err := svc.Login(context.Background(), "demo", "test123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected a non-credential error, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := &stubCredentialStore{users: map[string]string{"demo": "test123"}}
	limiter := newStubLimiter()
	limiter.allowed = false
	svc, _ := newTestAuthService(t, store, limiter)

	if _, err := svc.Login(context.Background(), "demo", "test123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("throttled attempt must not reach the store")
	}
}

func TestAuthService_Login_RecordsFailuresAndResets(t *testing.T) {
	store := &stubCredentialStore{users: map[string]string{"demo": "test123"}}
	limiter := newStubLimiter()
	svc, _ := newTestAuthService(t, store, limiter)

	_, _ = svc.Login(context.Background(), "demo", "bad")
	_, _ = svc.Login(context.Background(), "demo", "bad")
	if limiter.failures["demo"] != 2 {
		t.Fatalf("expected 2 recorded failures, got %d", limiter.failures["demo"])
	}

	if _, err := svc.Login(context.Background(), "demo", "test123"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	store := &stubCredentialStore{users: map[string]string{"demo": "test123"}}
	limiter := newStubLimiter()
	limiter.allowErr = errors.New("redis unreachable")
	svc, _ := newTestAuthService(t, store, limiter)

	if _, err := svc.Login(context.Background(), "demo", "test123"); err != nil {
		t.Fatalf("limiter outage must not block login: %v", err)
	}
}
