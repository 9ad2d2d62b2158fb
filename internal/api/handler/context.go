package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/askdesk/askdesk/internal/api/middleware"
)

// ctxSubject returns the subject injected by the Auth middleware, or "" on
// routes mounted without it.
func ctxSubject(c echo.Context) string {
	subject, _ := c.Get(middleware.SubjectKey).(string)
	return subject
}
