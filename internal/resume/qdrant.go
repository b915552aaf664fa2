package resume

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
)

const defaultVectorSize = 768

// QdrantIndex stores embedded resume chunks in a Qdrant collection. Chunks
// for one session are grouped under a session id so concurrent screenings do
// not see each other's resumes.
type QdrantIndex struct {
	client     *qdrant.Client
	embedder   ai.Embedder
	logger     *zap.Logger
	collection string
	sessionID  string
	topK       int
}

// QdrantParams carries the connection settings from the config layer.
type QdrantParams struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
	VectorSize uint64
}

func NewQdrantIndex(params QdrantParams, embedder ai.Embedder, logger *zap.Logger, topK int) (*QdrantIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	if params.Collection == "" {
		params.Collection = "resumes"
	}
	if params.VectorSize == 0 {
		params.VectorSize = defaultVectorSize
	}
	if params.Port == 0 {
		params.Port = 6334
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   params.Host,
		Port:   params.Port,
		APIKey: params.APIKey,
		UseTLS: params.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}

	index := &QdrantIndex{
		client:     client,
		embedder:   embedder,
		logger:     logger,
		collection: params.Collection,
		sessionID:  uuid.NewString(),
		topK:       topK,
	}

	if err := index.ensureCollection(context.Background(), params.VectorSize); err != nil {
		return nil, err
	}

	return index, nil
}

func (q *QdrantIndex) ensureCollection(ctx context.Context, vectorSize uint64) error {
	exists, err := q.client.CollectionExists(ctx, q.collection)
	if err != nil {
		return fmt.Errorf("check qdrant collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("create qdrant collection: %w", err)
	}

	q.logger.Info("qdrant collection created", zap.String("collection", q.collection))

	return nil
}

// Add embeds the chunks and upserts them under this session's id.
func (q *QdrantIndex) Add(ctx context.Context, chunks []string) error {
	points := make([]*qdrant.PointStruct, 0, len(chunks))

	for _, chunk := range chunks {
		vector, err := q.embedder.Embed(ctx, chunk)
		if err != nil {
			q.logger.Warn("skipping resume chunk, embedding failed", zap.Error(err))
			continue
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.NewString()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"session_id": q.sessionID,
				"text":       chunk,
			}),
		})
	}

	if len(points) == 0 {
		return fmt.Errorf("no resume chunks could be embedded")
	}

	if _, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collection,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upsert resume chunks: %w", err)
	}

	q.logger.Debug("resume chunks stored",
		zap.String("collection", q.collection),
		zap.Int("chunks", len(points)),
	)

	return nil
}

// Lookup returns the chunks for this session most similar to the topic.
func (q *QdrantIndex) Lookup(ctx context.Context, topic string) ([]string, error) {
	query, err := q.embedder.Embed(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("embed lookup topic: %w", err)
	}

	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("session_id", q.sessionID),
		},
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collection,
		Query:          qdrant.NewQuery(query...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(q.topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query resume chunks: %w", err)
	}

	snippets := make([]string, 0, len(points))
	for _, point := range points {
		text, ok := point.Payload["text"]
		if !ok {
			continue
		}
		if value, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
			snippets = append(snippets, value.StringValue)
		}
	}

	return snippets, nil
}
