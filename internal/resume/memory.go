package resume

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

const defaultTopK = 3

// MemoryIndex is the default retrieval backend: an in-process cosine
// similarity index over embedded resume chunks. It lives only as long as the
// screening session.
type MemoryIndex struct {
	embedder ai.Embedder
	logger   *zap.Logger
	topK     int

	chunks  []string
	vectors [][]float32
}

func NewMemoryIndex(embedder ai.Embedder, logger *zap.Logger, topK int) *MemoryIndex {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	return &MemoryIndex{embedder: embedder, logger: logger, topK: topK}
}

// Add embeds the given chunks and stores them for lookup. A chunk whose
// embedding fails is dropped; the index is still usable with the rest.
func (m *MemoryIndex) Add(ctx context.Context, chunks []string) error {
	for _, chunk := range chunks {
		vector, err := m.embedder.Embed(ctx, chunk)
		if err != nil {
			m.logger.Warn("skipping resume chunk, embedding failed", zap.Error(err))
			continue
		}

		m.chunks = append(m.chunks, chunk)
		m.vectors = append(m.vectors, vector)
	}

	if len(m.chunks) == 0 {
		return fmt.Errorf("no resume chunks could be embedded")
	}

	m.logger.Debug("resume index populated", zap.Int("chunks", len(m.chunks)))

	return nil
}

// Lookup returns up to topK chunks most similar to the topic, best first.
func (m *MemoryIndex) Lookup(ctx context.Context, topic string) ([]string, error) {
	if len(m.chunks) == 0 {
		return nil, nil
	}

	query, err := m.embedder.Embed(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embed lookup topic: %w", err)
	}

	type scored struct {
		chunk string
		score float64
	}

	results := make([]scored, 0, len(m.chunks))
	for i, vector := range m.vectors {
		score := cosineSimilarity(query, vector)
		if score <= 0 {
			continue
		}
		results = append(results, scored{chunk: m.chunks[i], score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > m.topK {
		results = results[:m.topK]
	}

	snippets := make([]string, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, r.chunk)
	}

	return snippets, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
