package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}
	return s
}

func TestProductRoundTrip(t *testing.T) {
	s := newTestStore(t)

	p := Product{ID: "p99", Title: "Velvet Armchair", Price: 9000000, CategoryName: "armchair"}
	if err := s.AddProduct(p); err != nil {
		t.Fatalf("AddProduct err: %v", err)
	}

	got, err := s.ProductByID("p99")
	if err != nil {
		t.Fatalf("ProductByID err: %v", err)
	}
	if got.Title != p.Title || got.Price != p.Price {
		t.Fatalf("round trip mismatch: got %+v", got)
	}

	if err := s.DeleteProduct("p99"); err != nil {
		t.Fatalf("DeleteProduct err: %v", err)
	}
	if _, err := s.ProductByID("p99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAddProductRejectsDuplicateID(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddProduct(Product{ID: "p1", Title: "Duplicate"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID for seeded id, got %v", err)
	}
}

func TestAddProductRejectsEmptyID(t *testing.T) {
	s := newTestStore(t)

	if err := s.AddProduct(Product{Title: "No id"}); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestUpdateKeepsStoredID(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdatePolicy("pol1", Policy{ID: "other", Title: "New warranty", Content: "updated"}); err != nil {
		t.Fatalf("UpdatePolicy err: %v", err)
	}

	got, err := s.PolicyByID("pol1")
	if err != nil {
		t.Fatalf("PolicyByID err: %v", err)
	}
	if got.Title != "New warranty" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestUpdateMissingRecordReportsNotFound(t *testing.T) {
	s := newTestStore(t)

	if err := s.UpdateFAQ("missing", FAQ{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteOrder("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOrdersByUser(t *testing.T) {
	s := newTestStore(t)

	orders, err := s.OrdersByUser("u1")
	if err != nil {
		t.Fatalf("OrdersByUser err: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("expected seeded order o1 for u1, got %+v", orders)
	}
	if orders[0].Items[0].Title != "Sofa Elegance" {
		t.Fatalf("line item title not resolved from catalog: %+v", orders[0].Items[0])
	}

	none, err := s.OrdersByUser("stranger")
	if err != nil {
		t.Fatalf("OrdersByUser err: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no orders for unknown user, got %d", len(none))
	}
}

func TestCorruptCollectionFailsClosed(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "products.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	if _, err := s.Products(); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData on read, got %v", err)
	}
	if err := s.AddProduct(Product{ID: "p9", Title: "X"}); !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected mutation to fail closed, got %v", err)
	}
}

func TestSeedDataPresent(t *testing.T) {
	s := newTestStore(t)

	products, err := s.Products()
	if err != nil {
		t.Fatalf("Products err: %v", err)
	}
	if len(products) == 0 {
		t.Fatal("expected seeded products")
	}

	faqs, err := s.FAQs()
	if err != nil {
		t.Fatalf("FAQs err: %v", err)
	}
	if len(faqs) == 0 {
		t.Fatal("expected seeded faqs")
	}
}
