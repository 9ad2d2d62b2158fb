// Package llm holds completion and embedding collaborators that are not tied
// to a specific provider.
package llm

import (
	"context"
	"fmt"

	"github.com/askdesk/askdesk/internal/core/domain"
)

// Unavailable stands in for the completion and embedding collaborators when
// no provider is configured. Every call fails with domain.ErrUpstreamUnavailable,
// so /ask answers 502 and job-intake explanations degrade.
type Unavailable struct {
	Reason string
}

func (u Unavailable) Complete(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, u.reason())
}

func (u Unavailable) Embed(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, u.reason())
}

func (u Unavailable) reason() string {
	if u.Reason == "" {
		return "no llm provider configured"
	}
	return u.Reason
}
