package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/service/retrieval"
	"github.com/interlux/chatbot/backend/internal/vectorstore"
)

// indexTimeout bounds one vector index maintenance call. Index maintenance
// is best-effort: the keyword fallback keeps retrieval correct when the
// index lags or is down.
const indexTimeout = 5 * time.Second

// Service fronts catalog mutations, keeping the vector index in sync with
// the collection files. Orders are not indexed; they are looked up by user
// id, not by similarity.
type Service struct {
	store *catalog.Store
	index vectorstore.Index
}

// NewService wraps the file store. index may be nil.
func NewService(store *catalog.Store, index vectorstore.Index) *Service {
	return &Service{store: store, index: index}
}

// Store exposes the underlying repository for read paths.
func (s *Service) Store() *catalog.Store {
	return s.store
}

// AddProduct persists the product and indexes it.
func (s *Service) AddProduct(ctx context.Context, p catalog.Product) error {
	if err := s.store.AddProduct(p); err != nil {
		return err
	}
	s.indexRecord(ctx, retrieval.CorpusProducts, p.ID, productDocument(p))
	return nil
}

// UpdateProduct replaces the product and refreshes its index entry.
func (s *Service) UpdateProduct(ctx context.Context, id string, p catalog.Product) error {
	if err := s.store.UpdateProduct(id, p); err != nil {
		return err
	}
	p.ID = id
	s.indexRecord(ctx, retrieval.CorpusProducts, id, productDocument(p))
	return nil
}

// DeleteProduct removes the product from storage and the index.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}
	s.deleteRecord(ctx, retrieval.CorpusProducts, id)
	return nil
}

// AddPolicy persists the policy and indexes it.
func (s *Service) AddPolicy(ctx context.Context, p catalog.Policy) error {
	if err := s.store.AddPolicy(p); err != nil {
		return err
	}
	s.indexRecord(ctx, retrieval.CorpusPolicies, p.ID, policyDocument(p))
	return nil
}

// UpdatePolicy replaces the policy and refreshes its index entry.
func (s *Service) UpdatePolicy(ctx context.Context, id string, p catalog.Policy) error {
	if err := s.store.UpdatePolicy(id, p); err != nil {
		return err
	}
	p.ID = id
	s.indexRecord(ctx, retrieval.CorpusPolicies, id, policyDocument(p))
	return nil
}

// DeletePolicy removes the policy from storage and the index.
func (s *Service) DeletePolicy(ctx context.Context, id string) error {
	if err := s.store.DeletePolicy(id); err != nil {
		return err
	}
	s.deleteRecord(ctx, retrieval.CorpusPolicies, id)
	return nil
}

// AddFAQ persists the FAQ and indexes it.
func (s *Service) AddFAQ(ctx context.Context, f catalog.FAQ) error {
	if err := s.store.AddFAQ(f); err != nil {
		return err
	}
	s.indexRecord(ctx, retrieval.CorpusFAQs, f.ID, faqDocument(f))
	return nil
}

// UpdateFAQ replaces the FAQ and refreshes its index entry.
func (s *Service) UpdateFAQ(ctx context.Context, id string, f catalog.FAQ) error {
	if err := s.store.UpdateFAQ(id, f); err != nil {
		return err
	}
	f.ID = id
	s.indexRecord(ctx, retrieval.CorpusFAQs, id, faqDocument(f))
	return nil
}

// DeleteFAQ removes the FAQ from storage and the index.
func (s *Service) DeleteFAQ(ctx context.Context, id string) error {
	if err := s.store.DeleteFAQ(id); err != nil {
		return err
	}
	s.deleteRecord(ctx, retrieval.CorpusFAQs, id)
	return nil
}

// AddOrder persists the order.
func (s *Service) AddOrder(o catalog.Order) error {
	return s.store.AddOrder(o)
}

// UpdateOrder replaces the order.
func (s *Service) UpdateOrder(id string, o catalog.Order) error {
	return s.store.UpdateOrder(id, o)
}

// DeleteOrder removes the order.
func (s *Service) DeleteOrder(id string) error {
	return s.store.DeleteOrder(id)
}

// ReindexAll pushes every searchable record into the vector index. Run at
// startup so a fresh index catches up with the collection files.
func (s *Service) ReindexAll(ctx context.Context) {
	if s.index == nil {
		return
	}

	products, err := s.store.Products()
	if err != nil {
		log.Printf("[catalog] skip product reindex: %v", err)
	} else {
		for _, p := range products {
			s.indexRecord(ctx, retrieval.CorpusProducts, p.ID, productDocument(p))
		}
		log.Printf("[catalog] indexed %d products", len(products))
	}

	policies, err := s.store.Policies()
	if err != nil {
		log.Printf("[catalog] skip policy reindex: %v", err)
	} else {
		for _, p := range policies {
			s.indexRecord(ctx, retrieval.CorpusPolicies, p.ID, policyDocument(p))
		}
		log.Printf("[catalog] indexed %d policies", len(policies))
	}

	faqs, err := s.store.FAQs()
	if err != nil {
		log.Printf("[catalog] skip faq reindex: %v", err)
	} else {
		for _, f := range faqs {
			s.indexRecord(ctx, retrieval.CorpusFAQs, f.ID, faqDocument(f))
		}
		log.Printf("[catalog] indexed %d faqs", len(faqs))
	}
}

func (s *Service) indexRecord(ctx context.Context, corpus, id, text string) {
	if s.index == nil {
		return
	}
	callCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := s.index.Index(callCtx, corpus, id, text, nil); err != nil {
		log.Printf("[catalog] failed to index %s/%s: %v", corpus, id, err)
	}
}

func (s *Service) deleteRecord(ctx context.Context, corpus, id string) {
	if s.index == nil {
		return
	}
	callCtx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()
	if err := s.index.Delete(callCtx, corpus, id); err != nil {
		log.Printf("[catalog] failed to remove %s/%s from index: %v", corpus, id, err)
	}
}

// productDocument builds the embedded text for a product.
func productDocument(p catalog.Product) string {
	skus := make([]string, 0, len(p.Variations))
	for _, v := range p.Variations {
		skus = append(skus, v.SKU)
	}
	doc := fmt.Sprintf("%s: %s Price: %.0f VND. Category: %s.", p.Title, p.Description, p.Price, p.CategoryName)
	if len(skus) > 0 {
		doc += " Variations: " + strings.Join(skus, ", ")
	}
	return doc
}

// policyDocument builds the embedded text for a policy.
func policyDocument(p catalog.Policy) string {
	return fmt.Sprintf("%s: %s", p.Title, p.Content)
}

// faqDocument builds the embedded text for a FAQ.
func faqDocument(f catalog.FAQ) string {
	return fmt.Sprintf("Question: %s Answer: %s", f.Question, f.Answer)
}
