// Package resume loads the static resume dataset that backs job intake and
// GET /resume/source.
package resume

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/askdesk/askdesk/internal/core/domain"
)

//go:embed schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// ValidationError lists every schema violation found in a seed document.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "resume seed does not match schema: " + strings.Join(e.Errors, "; ")
}

// Source serves a dataset loaded once at startup. When loading failed,
// Dataset reports domain.ErrNotLoaded for the lifetime of the process.
type Source struct {
	dataset *domain.ResumeDataset
	loadErr error
}

// NewSource wraps an already loaded dataset.
func NewSource(ds *domain.ResumeDataset) *Source {
	if ds == nil {
		return &Source{loadErr: domain.ErrNotLoaded}
	}
	return &Source{dataset: ds}
}

// LoadSource reads and validates the seed at path. Failures are logged and
// turned into a Source that is not loaded; the server still starts.
func LoadSource(path string, log zerolog.Logger) *Source {
	ds, err := LoadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("resume seed not loaded, job intake disabled")
		return &Source{loadErr: fmt.Errorf("%w: %v", domain.ErrNotLoaded, err)}
	}
	log.Info().
		Str("path", path).
		Int("experiences", len(ds.Experiences)).
		Int("projects", len(ds.Projects)).
		Int("skills", len(ds.Skills)).
		Msg("resume seed loaded")
	return &Source{dataset: ds}
}

// Dataset returns the loaded dataset. Callers must not mutate it.
func (s *Source) Dataset() (*domain.ResumeDataset, error) {
	if s.dataset == nil {
		if s.loadErr != nil {
			return nil, s.loadErr
		}
		return nil, domain.ErrNotLoaded
	}
	return s.dataset, nil
}

// LoadFile reads path, validates it against the embedded schema and decodes it.
func LoadFile(path string) (*domain.ResumeDataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume seed: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the embedded schema and decodes it.
func Parse(raw []byte) (*domain.ResumeDataset, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate resume seed: %w", err)
	}
	if !result.Valid() {
		verr := &ValidationError{Errors: make([]string, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, field+": "+desc.Description())
		}
		return nil, verr
	}

	var ds domain.ResumeDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode resume seed: %w", err)
	}
	return &ds, nil
}
