// Package retrieval holds the retriever registry and the retrieval backends
// the ask orchestrator fans out to.
package retrieval

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/askdesk/askdesk/internal/core/ports"
)

// Registry maps backend names to retrievers. It is populated once at startup
// and read concurrently afterwards.
type Registry struct {
	order  []string
	byName map[string]ports.Retriever
	log    zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{byName: make(map[string]ports.Retriever), log: log}
}

// Register adds r under name. Registering a name twice is a wiring bug.
func (r *Registry) Register(name string, retriever ports.Retriever) error {
	if name == "" {
		return fmt.Errorf("register retriever: empty name")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("register retriever: %q already registered", name)
	}
	r.order = append(r.order, name)
	r.byName[name] = retriever
	return nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns every retriever in registration order when names is empty.
// Otherwise it follows the requested order, dropping unknown names and
// resolving duplicates once.
func (r *Registry) Resolve(names []string) []ports.NamedRetriever {
	if len(names) == 0 {
		names = r.order
	}

	out := make([]ports.NamedRetriever, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		retriever, ok := r.byName[name]
		if !ok {
			r.log.Warn().Str("retriever", name).Msg("unknown retriever requested, ignoring")
			continue
		}
		out = append(out, ports.NamedRetriever{Name: name, Retriever: retriever})
	}
	return out
}
