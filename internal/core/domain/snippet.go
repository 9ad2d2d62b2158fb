package domain

import "strings"

// SourceKind identifies the retrieval backend a snippet came from.
type SourceKind string

const (
	SourceMock   SourceKind = "mock"
	SourceFlat   SourceKind = "flat"
	SourceQdrant SourceKind = "qdrant"
)

// Snippet is an attributed retrieval result. It is immutable once returned
// by a retriever.
type Snippet struct {
	Kind  SourceKind
	ID    string
	Title string
	Text  string
	URL   string
}

// NormalizeSnippets enforces the retriever output contract: every snippet
// carries its source kind and non-empty text. Snippets with blank text are
// dropped; order is preserved.
func NormalizeSnippets(kind SourceKind, in []Snippet) []Snippet {
	out := make([]Snippet, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		if s.Kind == "" {
			s.Kind = kind
		}
		out = append(out, s)
	}
	return out
}
