package ports

import "context"

// TokenService issues and verifies signed, time-bound bearer tokens.
type TokenService interface {
	Issue(subject string) (string, error)
	// Verify returns the token subject, or an error wrapping
	// domain.ErrUnauthenticated.
	Verify(token string) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}
