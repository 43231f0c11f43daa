package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/interlux/chatbot/backend/internal/vectorstore"
)

// payloadRecordID is the payload key carrying the catalog record id. Qdrant
// point ids must be UUIDs or numbers, so catalog ids like "p1" are mapped to
// deterministic UUIDs and the original id travels in the payload.
const payloadRecordID = "record_id"

var pointNamespace = uuid.MustParse("8b6a2f9e-4c13-4a7d-9f2e-5d1b0c3a7e42")

// Config holds Qdrant connection configuration.
type Config struct {
	// URL is the Qdrant server address (e.g. "https://example.qdrant.io:6334").
	URL string

	// APIKey is an optional API key for authentication.
	APIKey string

	// CollectionPrefix namespaces the per-corpus collections.
	CollectionPrefix string
}

// Client implements vectorstore.Index backed by Qdrant, embedding query and
// document text through the supplied embedder.
type Client struct {
	client   *qdrant.Client
	embedder embedding.Embedder
	prefix   string

	mu      sync.Mutex
	created map[string]bool
}

// New creates a Qdrant-backed index.
func New(cfg Config, embedder embedding.Embedder) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}

	parsed := cfg.URL
	if !strings.HasPrefix(parsed, "http://") && !strings.HasPrefix(parsed, "https://") {
		parsed = "https://" + parsed
	}
	u, err := url.Parse(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	host := u.Hostname()
	port := 6334 // default gRPC port
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		port = p
	}

	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Client{
		client:   qdrantClient,
		embedder: embedder,
		prefix:   cfg.CollectionPrefix,
		created:  make(map[string]bool),
	}, nil
}

func (c *Client) collection(corpus string) string {
	if c.prefix == "" {
		return corpus
	}
	return c.prefix + "_" + corpus
}

func (c *Client) embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed text: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	vec := make([]float32, len(vectors[0]))
	for i, v := range vectors[0] {
		vec[i] = float32(v)
	}
	return vec, nil
}

// ensureCollection creates the corpus collection on first use, sized to the
// embedding dimension.
func (c *Client) ensureCollection(ctx context.Context, name string, dim int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.created[name] {
		return nil
	}

	exists, err := c.client.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection %s: %w", name, err)
	}
	if !exists {
		err = c.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: name,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(dim),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	c.created[name] = true
	return nil
}

// Index implements vectorstore.Index.
func (c *Client) Index(ctx context.Context, corpus, id, text string, payload map[string]any) error {
	vec, err := c.embed(ctx, text)
	if err != nil {
		return err
	}

	name := c.collection(corpus)
	if err := c.ensureCollection(ctx, name, len(vec)); err != nil {
		return err
	}

	values := map[string]any{payloadRecordID: id}
	for k, v := range payload {
		values[k] = v
	}

	_, err = c.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(pointID(corpus, id)),
				Vectors: qdrant.NewVectors(vec...),
				Payload: qdrant.NewValueMap(values),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

// Query implements vectorstore.Index.
func (c *Client) Query(ctx context.Context, corpus, text string, k int) ([]vectorstore.Hit, error) {
	vec, err := c.embed(ctx, text)
	if err != nil {
		return nil, err
	}

	limit := uint64(k)
	points, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection(corpus),
		Query:          qdrant.NewQuery(vec...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	hits := make([]vectorstore.Hit, 0, len(points))
	for _, point := range points {
		hit := vectorstore.Hit{
			Score:   point.Score,
			Payload: make(map[string]any),
		}
		for key, value := range point.GetPayload() {
			if key == payloadRecordID {
				hit.ID = value.GetStringValue()
				continue
			}
			hit.Payload[key] = extractValue(value)
		}
		if hit.ID == "" {
			continue
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Delete implements vectorstore.Index.
func (c *Client) Delete(ctx context.Context, corpus, id string) error {
	_, err := c.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: c.collection(corpus),
		Points:         qdrant.NewPointsSelector(qdrant.NewID(pointID(corpus, id))),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete failed: %w", err)
	}
	return nil
}

// Close implements vectorstore.Index.
func (c *Client) Close() error {
	return c.client.Close()
}

// pointID derives a stable UUID for a catalog record within a corpus.
func pointID(corpus, id string) string {
	return uuid.NewSHA1(pointNamespace, []byte(corpus+"/"+id)).String()
}

// extractValue converts a Qdrant payload value to a plain Go value.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	default:
		return nil
	}
}

// Compile-time check that Client implements Index.
var _ vectorstore.Index = (*Client)(nil)
