package catalog

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	catalogModel "github.com/interlux/chatbot/backend/internal/model/catalog"
	catalogService "github.com/interlux/chatbot/backend/internal/service/catalog"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := catalogModel.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore err: %v", err)
	}
	r := chi.NewRouter()
	New(catalogService.NewService(store, nil)).RegisterRoutes(r)
	return r
}

func do(t *testing.T, router http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProductCRUDRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/catalog/products",
		strings.NewReader(`{"id":"p9","title":"Side Table","price":2000000}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d; body: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodGet, "/catalog/products/p9", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var p catalogModel.Product
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if p.Title != "Side Table" {
		t.Fatalf("title = %q", p.Title)
	}

	rec = do(t, router, http.MethodPut, "/catalog/products/p9",
		strings.NewReader(`{"id":"p9","title":"Side Table v2","price":2100000}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/catalog/products/p9", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/catalog/products/p9", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	router := newTestRouter(t)

	// Duplicate id conflicts with the seeded catalog.
	rec := do(t, router, http.MethodPost, "/catalog/products",
		strings.NewReader(`{"id":"p1","title":"Clone"}`))
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}

	// Missing id is rejected before touching the file.
	rec = do(t, router, http.MethodPost, "/catalog/policies",
		strings.NewReader(`{"title":"No id"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/catalog/faqs/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing status = %d, want 404", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/catalog/orders", strings.NewReader(`{`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestListOrdersFiltersByUser(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/catalog/orders?user_id=u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var orders []catalogModel.Order
	if err := json.NewDecoder(rec.Body).Decode(&orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != "o1" {
		t.Fatalf("expected seeded order o1 for u1, got %+v", orders)
	}

	rec = do(t, router, http.MethodGet, "/catalog/orders", nil)
	orders = nil
	if err := json.NewDecoder(rec.Body).Decode(&orders); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 seeded orders, got %d", len(orders))
	}
}
