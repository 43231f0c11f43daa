package retrieval

import (
	"context"
	"log"
	"time"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
	"github.com/interlux/chatbot/backend/internal/vectorstore"
)

// Corpus names as used by the vector index collections.
const (
	CorpusProducts = "products"
	CorpusPolicies = "policies"
	CorpusFAQs     = "faqs"
)

// Default result limits per corpus.
const (
	DefaultProductLimit = 5
	DefaultPolicyLimit  = 3
	DefaultFAQLimit     = 3
)

// queryTimeout bounds one vector index query. No retry: the keyword fallback
// already covers the failure path.
const queryTimeout = 3 * time.Second

// Service routes a query to the corpus selected by intent. Each corpus search
// attempts the vector index first and falls back to a deterministic keyword
// scan when the index is absent, erroring, or empty. Vector results carry
// similarity rank; fallback results carry storage order. The two orderings
// are not comparable.
type Service struct {
	index vectorstore.Index
	store *catalog.Store
}

// NewService creates the retrieval router. index may be nil, in which case
// every search takes the fallback path.
func NewService(index vectorstore.Index, store *catalog.Store) *Service {
	return &Service{index: index, store: store}
}

// Retrieve returns the records relevant to the message under the given
// intent. order_management carries no corpus here; the orchestrator attaches
// order records from the session's user id. An empty corpus yields an empty
// result, never an error.
func (s *Service) Retrieve(ctx context.Context, query string, intent chat.Intent) chat.Retrieved {
	var out chat.Retrieved
	switch intent {
	case chat.IntentProductInquiry:
		out.Products = s.SearchProducts(ctx, query, DefaultProductLimit)
	case chat.IntentProductRecommendation:
		out.Recommended = s.SearchProducts(ctx, query, DefaultProductLimit)
	case chat.IntentPolicyInquiry:
		out.Policies = s.SearchPolicies(ctx, query, DefaultPolicyLimit)
	case chat.IntentGeneralQuestion:
		out.FAQs = s.SearchFAQs(ctx, query, DefaultFAQLimit)
	}
	return out
}

// SearchProducts returns at most limit products matching the query.
func (s *Service) SearchProducts(ctx context.Context, query string, limit int) []catalog.Product {
	products, err := s.store.Products()
	if err != nil {
		log.Printf("[retrieval] products corpus unreadable, treating as empty: %v", err)
		return []catalog.Product{}
	}

	if matched, ok := vectorSearch(ctx, s.index, CorpusProducts, query, limit, products, func(p catalog.Product) string { return p.ID }); ok {
		return matched
	}
	return matchProducts(products, query, limit)
}

// SearchPolicies returns at most limit policies matching the query.
func (s *Service) SearchPolicies(ctx context.Context, query string, limit int) []catalog.Policy {
	policies, err := s.store.Policies()
	if err != nil {
		log.Printf("[retrieval] policies corpus unreadable, treating as empty: %v", err)
		return []catalog.Policy{}
	}

	if matched, ok := vectorSearch(ctx, s.index, CorpusPolicies, query, limit, policies, func(p catalog.Policy) string { return p.ID }); ok {
		return matched
	}
	return matchPolicies(policies, query, limit)
}

// SearchFAQs returns at most limit FAQs matching the query.
func (s *Service) SearchFAQs(ctx context.Context, query string, limit int) []catalog.FAQ {
	faqs, err := s.store.FAQs()
	if err != nil {
		log.Printf("[retrieval] faqs corpus unreadable, treating as empty: %v", err)
		return []catalog.FAQ{}
	}

	if matched, ok := vectorSearch(ctx, s.index, CorpusFAQs, query, limit, faqs, func(f catalog.FAQ) string { return f.ID }); ok {
		return matched
	}
	return matchFAQs(faqs, query, limit)
}

// vectorSearch resolves similarity hits back to catalog records, preserving
// rank order. ok is false when the caller should take the fallback path.
func vectorSearch[T any](ctx context.Context, index vectorstore.Index, corpus, query string, limit int, records []T, idOf func(T) string) ([]T, bool) {
	if index == nil {
		return nil, false
	}

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	hits, err := index.Query(queryCtx, corpus, query, limit)
	if err != nil {
		log.Printf("[retrieval] vector query failed for %s, falling back to keyword search: %v", corpus, err)
		return nil, false
	}
	if len(hits) == 0 {
		return nil, false
	}

	byID := make(map[string]T, len(records))
	for _, rec := range records {
		byID[idOf(rec)] = rec
	}

	matched := make([]T, 0, len(hits))
	for _, hit := range hits {
		if rec, ok := byID[hit.ID]; ok {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		// Hits referenced records no longer in the catalog.
		return nil, false
	}
	return matched, true
}
