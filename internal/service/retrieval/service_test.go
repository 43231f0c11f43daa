package retrieval

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
	"github.com/interlux/chatbot/backend/internal/vectorstore"
)

// fakeIndex implements vectorstore.Index for tests.
type fakeIndex struct {
	hits map[string][]vectorstore.Hit
	err  error
}

func (f *fakeIndex) Index(ctx context.Context, corpus, id, text string, payload map[string]any) error {
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, corpus, text string, k int) ([]vectorstore.Hit, error) {
	if f.err != nil {
		return nil, f.err
	}
	hits := f.hits[corpus]
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

func (f *fakeIndex) Delete(ctx context.Context, corpus, id string) error { return nil }
func (f *fakeIndex) Close() error                                        { return nil }

func newTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	s, err := catalog.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}
	return s
}

func TestFallbackSearchMatchesFieldSet(t *testing.T) {
	svc := NewService(nil, newTestStore(t))

	// Seeded catalog: only "Sofa Elegance" mentions sofa (title, slug,
	// category and SKU all match).
	products := svc.SearchProducts(context.Background(), "sofa", DefaultProductLimit)
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("expected [p1] for query %q, got %+v", "sofa", products)
	}

	// A SKU-only match must hit too.
	products = svc.SearchProducts(context.Background(), "bed-lux", DefaultProductLimit)
	if len(products) != 1 || products[0].ID != "p3" {
		t.Fatalf("expected [p3] for SKU query, got %+v", products)
	}
}

func TestFallbackSearchMatchesSentenceQueries(t *testing.T) {
	svc := NewService(nil, newTestStore(t))

	// A full sentence matches through its keywords, not as one substring.
	policies := svc.SearchPolicies(context.Background(), "what is your warranty?", DefaultPolicyLimit)
	if len(policies) == 0 {
		t.Fatalf("sentence query matched no policies")
	}
	found := false
	for _, p := range policies {
		if p.ID == "pol1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected pol1 among matches, got %+v", policies)
	}

	products := svc.SearchProducts(context.Background(), "do you sell a sofa?", DefaultProductLimit)
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("expected [p1] for sentence query, got %+v", products)
	}
}

func TestQueryTerms(t *testing.T) {
	cases := []struct {
		query string
		want  []string
	}{
		{"sofa", []string{"sofa"}},
		{"what is your warranty?", []string{"what", "your", "warranty"}},
		{"BED-LUX", []string{"bed", "lux"}},
		{"a", []string{"a"}}, // nothing survives the noise filter
		{"   ", nil},
	}
	for _, c := range cases {
		got := queryTerms(c.query)
		if len(got) != len(c.want) {
			t.Fatalf("queryTerms(%q) = %v, want %v", c.query, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("queryTerms(%q) = %v, want %v", c.query, got, c.want)
			}
		}
	}
}

func TestFallbackSearchStorageOrderAndTruncation(t *testing.T) {
	svc := NewService(nil, newTestStore(t))

	// "a" appears in every seeded product; the limit truncates in storage
	// order.
	products := svc.SearchProducts(context.Background(), "a", 2)
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[1].ID != "p2" {
		t.Fatalf("expected storage order [p1 p2], got [%s %s]", products[0].ID, products[1].ID)
	}
}

func TestSearchEmptyCorpusReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "products.json"), []byte("[]"), 0o644); err != nil {
		t.Fatalf("write empty corpus: %v", err)
	}
	store, err := catalog.NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}

	svc := NewService(nil, store)
	products := svc.SearchProducts(context.Background(), "sofa", DefaultProductLimit)
	if len(products) != 0 {
		t.Fatalf("expected empty result over empty corpus, got %+v", products)
	}
	// Context.Merge distinguishes searched-but-empty from unsearched by
	// nilness, so an empty search must still return a non-nil slice.
	if products == nil {
		t.Fatal("empty search returned nil instead of an empty slice")
	}
}

func TestVectorErrorFallsBackToKeyword(t *testing.T) {
	index := &fakeIndex{err: errors.New("connection refused")}
	svc := NewService(index, newTestStore(t))

	products := svc.SearchProducts(context.Background(), "sofa", DefaultProductLimit)
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("expected keyword fallback result [p1], got %+v", products)
	}
}

func TestVectorHitsKeepSimilarityRank(t *testing.T) {
	index := &fakeIndex{hits: map[string][]vectorstore.Hit{
		CorpusProducts: {
			{ID: "p3", Score: 0.9},
			{ID: "p1", Score: 0.7},
			{ID: "ghost", Score: 0.5}, // no longer in the catalog
		},
	}}
	svc := NewService(index, newTestStore(t))

	products := svc.SearchProducts(context.Background(), "bed", DefaultProductLimit)
	if len(products) != 2 {
		t.Fatalf("expected 2 resolved hits, got %d", len(products))
	}
	if products[0].ID != "p3" || products[1].ID != "p1" {
		t.Fatalf("expected similarity order [p3 p1], got [%s %s]", products[0].ID, products[1].ID)
	}
}

func TestVectorEmptyResultFallsBack(t *testing.T) {
	index := &fakeIndex{hits: map[string][]vectorstore.Hit{}}
	svc := NewService(index, newTestStore(t))

	policies := svc.SearchPolicies(context.Background(), "warranty", DefaultPolicyLimit)
	if len(policies) != 1 || policies[0].ID != "pol1" {
		t.Fatalf("expected fallback policy [pol1], got %+v", policies)
	}
}

func TestRetrieveRoutesByIntent(t *testing.T) {
	svc := NewService(nil, newTestStore(t))
	ctx := context.Background()

	got := svc.Retrieve(ctx, "sofa", chat.IntentProductInquiry)
	if len(got.Products) == 0 || got.Recommended != nil {
		t.Fatalf("product_inquiry should fill products only: %+v", got)
	}

	got = svc.Retrieve(ctx, "sofa", chat.IntentProductRecommendation)
	if len(got.Recommended) == 0 || got.Products != nil {
		t.Fatalf("product_recommendation should fill recommended only: %+v", got)
	}

	got = svc.Retrieve(ctx, "warranty", chat.IntentPolicyInquiry)
	if len(got.Policies) == 0 {
		t.Fatalf("policy_inquiry should fill policies: %+v", got)
	}

	got = svc.Retrieve(ctx, "delivery", chat.IntentGeneralQuestion)
	if len(got.FAQs) == 0 {
		t.Fatalf("general_question should fill faqs: %+v", got)
	}

	got = svc.Retrieve(ctx, "my orders", chat.IntentOrderManagement)
	if got.Products != nil || got.Policies != nil || got.FAQs != nil || got.Orders != nil {
		t.Fatalf("order_management retrieves no corpus here: %+v", got)
	}
}
