package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

const defaultTopK = 3

// FlatEntry is one pre-embedded chunk in a flat index file.
type FlatEntry struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	URL    string    `json:"url"`
	Vector []float32 `json:"vector"`
}

// FlatIndexFile is the on-disk layout produced by the external indexing
// pipeline.
type FlatIndexFile struct {
	Dimension int         `json:"dimension"`
	Entries   []FlatEntry `json:"entries"`
}

// FlatIndex is an in-process brute-force cosine index. It is read-only after
// construction.
type FlatIndex struct {
	entries  []FlatEntry
	norms    []float64
	dim      int
	topK     int
	embedder ports.Embedder
}

// LoadFlatIndex reads the index at path. A missing or empty file yields an
// empty index that answers every query with no results.
func LoadFlatIndex(path string, embedder ports.Embedder, topK int, log zerolog.Logger) (*FlatIndex, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	idx := &FlatIndex{topK: topK, embedder: embedder}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("flat index not found, retriever will return no results")
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read flat index: %w", err)
	}
	if len(raw) == 0 {
		log.Warn().Str("path", path).Msg("flat index is empty")
		return idx, nil
	}

	var file FlatIndexFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode flat index %s: %w", path, err)
	}
	if err := idx.load(file); err != nil {
		return nil, fmt.Errorf("flat index %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("entries", len(idx.entries)).Int("dimension", idx.dim).Msg("flat index loaded")
	return idx, nil
}

// NewFlatIndex builds an index from already decoded entries.
func NewFlatIndex(file FlatIndexFile, embedder ports.Embedder, topK int) (*FlatIndex, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	idx := &FlatIndex{topK: topK, embedder: embedder}
	if err := idx.load(file); err != nil {
		return nil, err
	}
	return idx, nil
}

func (f *FlatIndex) load(file FlatIndexFile) error {
	f.dim = file.Dimension
	for i, e := range file.Entries {
		if f.dim == 0 {
			f.dim = len(e.Vector)
		}
		if len(e.Vector) != f.dim {
			return fmt.Errorf("entry %d (%s): vector has %d dimensions, want %d", i, e.ID, len(e.Vector), f.dim)
		}
		f.entries = append(f.entries, e)
		f.norms = append(f.norms, norm(e.Vector))
	}
	return nil
}

// Len reports the number of indexed entries.
func (f *FlatIndex) Len() int { return len(f.entries) }

// Retrieve embeds query and returns the topK most similar entries, most
// similar first.
func (f *FlatIndex) Retrieve(ctx context.Context, query string) ([]domain.Snippet, error) {
	if len(f.entries) == 0 {
		return []domain.Snippet{}, nil
	}

	vec, err := f.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vec) != f.dim {
		return nil, fmt.Errorf("query embedding has %d dimensions, index has %d", len(vec), f.dim)
	}

	qn := norm(vec)
	type scored struct {
		i     int
		score float64
	}
	hits := make([]scored, 0, len(f.entries))
	for i, e := range f.entries {
		hits = append(hits, scored{i: i, score: cosine(vec, qn, e.Vector, f.norms[i])})
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	k := min(f.topK, len(hits))
	out := make([]domain.Snippet, 0, k)
	for _, h := range hits[:k] {
		e := f.entries[h.i]
		out = append(out, domain.Snippet{ID: e.ID, Title: e.Title, Text: e.Text, URL: e.URL})
	}
	return domain.NormalizeSnippets(domain.SourceFlat, out), nil
}

func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func cosine(a []float32, an float64, b []float32, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (an * bn)
}
