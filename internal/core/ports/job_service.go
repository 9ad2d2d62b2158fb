package ports

import (
	"context"

	"github.com/askdesk/askdesk/internal/core/domain"
)

// ResumeSource exposes the static resume dataset. Dataset returns
// domain.ErrNotLoaded when the seed failed to load at startup.
type ResumeSource interface {
	Dataset() (*domain.ResumeDataset, error)
}

// Explainer produces a natural-language justification for a single match.
type Explainer interface {
	Explain(ctx context.Context, jobDescription string, match domain.Match) (string, error)
}

// JobMatcher matches the resume dataset against a free-text job description.
type JobMatcher interface {
	Intake(ctx context.Context, jobDescription string) ([]domain.Match, error)
}

// TaskRunner runs fn for every index in [0, n) with bounded concurrency and
// blocks until all started calls return. Indices not started before ctx is
// done are skipped.
type TaskRunner interface {
	Run(ctx context.Context, n int, fn func(ctx context.Context, i int))
}
