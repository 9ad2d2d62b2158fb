package ports

import (
	"context"

	"github.com/askdesk/askdesk/internal/core/domain"
)

// Retriever returns attributed snippets for a query. "No results" is an empty
// slice, never an error; errors mean the backend could not be reached.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]domain.Snippet, error)
}

// NamedRetriever pairs a retriever with the name it was registered under.
type NamedRetriever struct {
	Name      string
	Retriever Retriever
}

// RetrieverRegistry resolves caller-supplied names to retrievers. An empty
// list resolves to every registered retriever in registration order.
type RetrieverRegistry interface {
	Resolve(names []string) []NamedRetriever
}
