package ports

import "context"

// CredentialStore verifies a username/password pair. Implementations must not
// reveal whether the username exists: unknown users and wrong passwords both
// yield ok=false with a nil error.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
