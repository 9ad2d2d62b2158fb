package retrieval

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/askdesk/askdesk/internal/core/domain"
	"github.com/askdesk/askdesk/internal/core/ports"
)

// QdrantAPI is the subset of *qdrant.Client the retriever uses.
type QdrantAPI interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// QdrantRetriever queries a Qdrant collection populated by an external
// pipeline. Points carry the chunk text under "text" (or "document") and
// optional "title" and "url" payload fields.
type QdrantRetriever struct {
	api        QdrantAPI
	collection string
	topK       int
	embedder   ports.Embedder
}

func NewQdrantRetriever(api QdrantAPI, collection string, topK int, embedder ports.Embedder) *QdrantRetriever {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &QdrantRetriever{api: api, collection: collection, topK: topK, embedder: embedder}
}

// NewQdrantClient connects to Qdrant over gRPC. Port 0 selects 6334.
func NewQdrantClient(host string, port int, apiKey string, useTLS bool) (*qdrant.Client, error) {
	if port == 0 {
		port = 6334
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant client: %w", err)
	}
	return client, nil
}

// Retrieve returns the topK nearest points to the embedded query. A missing
// collection is treated as an empty store.
func (r *QdrantRetriever) Retrieve(ctx context.Context, query string) ([]domain.Snippet, error) {
	exists, err := r.api.CollectionExists(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("qdrant collection %s: %w", r.collection, err)
	}
	if !exists {
		return []domain.Snippet{}, nil
	}

	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	limit := uint64(r.topK)
	points, err := r.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collection,
		Query:          qdrant.NewQuery(vec...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query %s: %w", r.collection, err)
	}

	out := make([]domain.Snippet, 0, len(points))
	for _, p := range points {
		out = append(out, snippetFromPoint(p))
	}
	return domain.NormalizeSnippets(domain.SourceQdrant, out), nil
}

func snippetFromPoint(p *qdrant.ScoredPoint) domain.Snippet {
	payload := p.GetPayload()
	text := payload["text"].GetStringValue()
	if text == "" {
		text = payload["document"].GetStringValue()
	}
	return domain.Snippet{
		ID:    pointID(p.GetId()),
		Title: payload["title"].GetStringValue(),
		Text:  text,
		URL:   payload["url"].GetStringValue(),
	}
}

func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}
