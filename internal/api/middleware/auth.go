package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

// SubjectKey is the echo context key holding the authenticated subject.
const SubjectKey = "subject"

// Auth verifies the bearer token and stores its subject under SubjectKey.
// Every failure is a domain.ErrUnauthenticated, rendered as 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				return fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthenticated)
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return fmt.Errorf("%w: empty bearer token", domain.ErrUnauthenticated)
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				return err
			}

			c.Set(SubjectKey, subject)
			return next(c)
		}
	}
}
