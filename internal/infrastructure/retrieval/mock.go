package retrieval

import (
	"context"
	"fmt"

	"github.com/askdesk/askdesk/internal/core/domain"
)

// Mock returns two fixed, attributed results for any query. It lets the full
// ask flow run without a populated vector store.
type Mock struct{}

func (Mock) Retrieve(_ context.Context, query string) ([]domain.Snippet, error) {
	return domain.NormalizeSnippets(domain.SourceMock, []domain.Snippet{
		{
			ID:    "mock1",
			Title: "Mock Experience: Python Automation",
			Text:  fmt.Sprintf("Matched '%s' in a mock SDET project at ACME Corp.", query),
		},
		{
			ID:    "mock2",
			Title: "Mock Project: AI Job Match Copilot",
			Text:  "Demonstrates experience with AI-powered resume generation and RAG search.",
		},
	}), nil
}
