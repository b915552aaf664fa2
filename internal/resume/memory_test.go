package resume

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

// stubEmbedder maps known texts to fixed vectors so similarity is predictable.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vector, ok := s.vectors[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return vector, nil
}

func TestMemoryIndexRanksBySimilarity(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"python chunk": {1, 0, 0},
		"go chunk":     {0, 1, 0},
		"mixed chunk":  {0.7, 0.7, 0},
		"Python":       {1, 0.1, 0},
	}}

	index := NewMemoryIndex(embedder, zap.NewNop(), 2)
	if err := index.Add(context.Background(), []string{"python chunk", "go chunk", "mixed chunk"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snippets, err := index.Lookup(context.Background(), "Python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snippets) != 2 {
		t.Fatalf("expected topK=2 snippets, got %d", len(snippets))
	}
	if snippets[0] != "python chunk" {
		t.Fatalf("expected the python chunk to rank first, got %q", snippets[0])
	}
}

func TestMemoryIndexSkipsFailedChunks(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"good chunk": {1, 0},
		"topic":      {1, 0},
	}}

	index := NewMemoryIndex(embedder, zap.NewNop(), 0)
	if err := index.Add(context.Background(), []string{"good chunk", "bad chunk"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snippets, err := index.Lookup(context.Background(), "topic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snippets) != 1 || snippets[0] != "good chunk" {
		t.Fatalf("expected only the embeddable chunk, got %v", snippets)
	}
}

func TestMemoryIndexAddFailsWhenNothingEmbeds(t *testing.T) {
	index := NewMemoryIndex(&stubEmbedder{err: errors.New("offline")}, zap.NewNop(), 0)

	if err := index.Add(context.Background(), []string{"chunk"}); err == nil {
		t.Fatalf("expected an error when no chunk could be embedded")
	}
}

func TestMemoryIndexEmptyLookup(t *testing.T) {
	index := NewMemoryIndex(&stubEmbedder{}, zap.NewNop(), 0)

	snippets, err := index.Lookup(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snippets) != 0 {
		t.Fatalf("expected no snippets from an empty index, got %v", snippets)
	}
}

func TestCosineSimilarity(t *testing.T) {
	cases := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 0}, b: []float32{1, 0}, expected: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expected: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 0}, expected: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, expected: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cosineSimilarity(tc.a, tc.b)
			if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
