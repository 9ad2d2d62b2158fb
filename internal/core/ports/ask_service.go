package ports

import (
	"context"

	"github.com/askdesk/askdesk/internal/core/domain"
)

// AskInput is the DTO passed from the transport layer to AskService.
type AskInput struct {
	Question string
	Sources  []string // optional; empty means every registered retriever
	Subject  string   // authenticated caller, for logging only
}

// AskResult carries the answer and the snippets it was built from, in
// retrieval order.
type AskResult struct {
	Answer  string
	Sources []domain.Snippet
	// FailedSources names retrievers that errored; their contribution is
	// missing from Sources.
	FailedSources []string
}

type AskService interface {
	Ask(ctx context.Context, input AskInput) (*AskResult, error)
}
