package vectorstore

import "context"

// Index is a technology-agnostic contract for semantic search over the
// catalog corpora. Implementations own the embedding step; callers hand over
// plain text. The index is an optional collaborator: retrieval must stay
// correct through the keyword fallback when it is absent or erroring.
type Index interface {
	// Index embeds text and upserts it into the named corpus under id.
	Index(ctx context.Context, corpus, id, text string, payload map[string]any) error

	// Query embeds text and returns up to k hits ranked by similarity.
	// The ranking is backend-defined and opaque to callers.
	Query(ctx context.Context, corpus, text string, k int) ([]Hit, error)

	// Delete removes the record from the named corpus.
	Delete(ctx context.Context, corpus, id string) error

	// Close releases any resources held by the index.
	Close() error
}

// Hit is a single similarity-search result.
type Hit struct {
	// ID is the catalog record id the hit refers to.
	ID string

	// Score is the similarity score, higher is more similar.
	Score float32

	// Payload carries the metadata stored at index time.
	Payload map[string]any
}
