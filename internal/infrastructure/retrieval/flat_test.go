package retrieval

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdesk/askdesk/internal/core/domain"
)

type stubEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	s.calls++
	return s.vec, s.err
}

func testIndexFile() FlatIndexFile {
	return FlatIndexFile{
		Dimension: 2,
		Entries: []FlatEntry{
			{ID: "a", Title: "East", Text: "points east", Vector: []float32{1, 0}},
			{ID: "b", Title: "North", Text: "points north", Vector: []float32{0, 1}},
			{ID: "c", Title: "North-east", Text: "points north-east", Vector: []float32{1, 1}},
			{ID: "d", Title: "Blank", Text: "   ", Vector: []float32{0.9, 0.1}},
		},
	}
}

func TestFlatIndex_ReturnsNearestFirst(t *testing.T) {
	emb := &stubEmbedder{vec: []float32{0, 2}}
	idx, err := NewFlatIndex(testIndexFile(), emb, 2)
	require.NoError(t, err)

	got, err := idx.Retrieve(context.Background(), "north")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, domain.SourceFlat, got[0].Kind)
}

func TestFlatIndex_DropsBlankSnippets(t *testing.T) {
	emb := &stubEmbedder{vec: []float32{1, 0}}
	idx, err := NewFlatIndex(testIndexFile(), emb, 10)
	require.NoError(t, err)

	got, err := idx.Retrieve(context.Background(), "east")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, s := range got {
		assert.NotEqual(t, "d", s.ID)
	}
}

func TestFlatIndex_EmbedderFailureIsError(t *testing.T) {
	emb := &stubEmbedder{err: errors.New("connection refused")}
	idx, err := NewFlatIndex(testIndexFile(), emb, 2)
	require.NoError(t, err)

	_, err = idx.Retrieve(context.Background(), "q")
	assert.Error(t, err)
}

func TestFlatIndex_RejectsMismatchedDimensions(t *testing.T) {
	file := FlatIndexFile{Dimension: 3, Entries: []FlatEntry{{ID: "x", Text: "t", Vector: []float32{1, 0}}}}

	_, err := NewFlatIndex(file, &stubEmbedder{}, 1)
	assert.Error(t, err)
}

func TestLoadFlatIndex_MissingFileIsEmpty(t *testing.T) {
	emb := &stubEmbedder{}
	idx, err := LoadFlatIndex(filepath.Join(t.TempDir(), "missing.json"), emb, 3, zerolog.Nop())
	require.NoError(t, err)

	got, err := idx.Retrieve(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, emb.calls, "empty index must not call the embedder")
}

func TestLoadFlatIndex_EmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	idx, err := LoadFlatIndex(path, &stubEmbedder{}, 3, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, idx.Len())
}

func TestLoadFlatIndex_ReadsFile(t *testing.T) {
	raw, err := json.Marshal(testIndexFile())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	idx, err := LoadFlatIndex(path, &stubEmbedder{vec: []float32{1, 0}}, 1, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	got, err := idx.Retrieve(context.Background(), "east")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestLoadFlatIndex_CorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadFlatIndex(path, &stubEmbedder{}, 3, zerolog.Nop())
	assert.Error(t, err)
}
