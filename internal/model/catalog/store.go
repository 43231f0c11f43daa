package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrNotFound      = errors.New("catalog record not found")
	ErrDuplicateID   = errors.New("catalog record id already exists")
	ErrInvalidRecord = errors.New("catalog record is invalid")
	ErrCorruptData   = errors.New("catalog collection file is unreadable")
)

const (
	productsFile = "products.json"
	policiesFile = "policies.json"
	faqsFile     = "faqs.json"
	ordersFile   = "orders.json"
)

// Store persists each record kind as one whole JSON collection file, the
// way the catalog has always been stored. A single mutex serializes all
// access; collections are small and read whole.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore opens (creating if needed) the catalog directory and writes the
// seed collections for any file that does not exist yet.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	s := &Store{dir: dir}
	if err := s.writeSeedData(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

// readCollection loads a whole collection file. A missing file reads as an
// empty collection; an unparseable one reports ErrCorruptData.
func readCollection[T any](s *Store, file string) ([]T, error) {
	raw, err := os.ReadFile(s.path(file))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, file, err)
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, file, err)
	}
	return records, nil
}

func writeCollection[T any](s *Store, file string, records []T) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", file, err)
	}
	if err := os.WriteFile(s.path(file), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}

func findByID[T any](records []T, id string, idOf func(T) string) (T, error) {
	for _, rec := range records {
		if idOf(rec) == id {
			return rec, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

// addRecord appends a record after checking id validity and uniqueness.
// Mutations fail closed when the collection file is unreadable.
func addRecord[T any](s *Store, file string, rec T, idOf func(T) string) error {
	if strings.TrimSpace(idOf(rec)) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	records, err := readCollection[T](s, file)
	if err != nil {
		return err
	}
	for _, existing := range records {
		if idOf(existing) == idOf(rec) {
			return ErrDuplicateID
		}
	}
	return writeCollection(s, file, append(records, rec))
}

// updateRecord replaces the record with the matching id, keeping its position
// in storage order. The stored id always wins over the payload's.
func updateRecord[T any](s *Store, file, id string, rec T, setID func(*T, string), idOf func(T) string) error {
	records, err := readCollection[T](s, file)
	if err != nil {
		return err
	}
	for i := range records {
		if idOf(records[i]) == id {
			setID(&rec, id)
			records[i] = rec
			return writeCollection(s, file, records)
		}
	}
	return ErrNotFound
}

func deleteRecord[T any](s *Store, file, id string, idOf func(T) string) error {
	records, err := readCollection[T](s, file)
	if err != nil {
		return err
	}
	for i := range records {
		if idOf(records[i]) == id {
			records = append(records[:i], records[i+1:]...)
			return writeCollection(s, file, records)
		}
	}
	return ErrNotFound
}

func productID(p Product) string { return p.ID }
func policyID(p Policy) string   { return p.ID }
func faqID(f FAQ) string         { return f.ID }
func orderID(o Order) string     { return o.ID }

// Products returns the product collection in storage order.
func (s *Store) Products() ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[Product](s, productsFile)
}

// ProductByID looks up a single product.
func (s *Store) ProductByID(id string) (Product, error) {
	products, err := s.Products()
	if err != nil {
		return Product{}, err
	}
	return findByID(products, id, productID)
}

// AddProduct appends a product; a duplicate id is rejected.
func (s *Store) AddProduct(p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addRecord(s, productsFile, p, productID)
}

// UpdateProduct replaces the product with the given id.
func (s *Store) UpdateProduct(id string, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateRecord(s, productsFile, id, p, func(rec *Product, id string) { rec.ID = id }, productID)
}

// DeleteProduct removes the product with the given id.
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteRecord[Product](s, productsFile, id, productID)
}

// Policies returns the policy collection in storage order.
func (s *Store) Policies() ([]Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[Policy](s, policiesFile)
}

// PolicyByID looks up a single policy.
func (s *Store) PolicyByID(id string) (Policy, error) {
	policies, err := s.Policies()
	if err != nil {
		return Policy{}, err
	}
	return findByID(policies, id, policyID)
}

// AddPolicy appends a policy; a duplicate id is rejected.
func (s *Store) AddPolicy(p Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addRecord(s, policiesFile, p, policyID)
}

// UpdatePolicy replaces the policy with the given id.
func (s *Store) UpdatePolicy(id string, p Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateRecord(s, policiesFile, id, p, func(rec *Policy, id string) { rec.ID = id }, policyID)
}

// DeletePolicy removes the policy with the given id.
func (s *Store) DeletePolicy(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteRecord[Policy](s, policiesFile, id, policyID)
}

// FAQs returns the FAQ collection in storage order.
func (s *Store) FAQs() ([]FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[FAQ](s, faqsFile)
}

// FAQByID looks up a single FAQ.
func (s *Store) FAQByID(id string) (FAQ, error) {
	faqs, err := s.FAQs()
	if err != nil {
		return FAQ{}, err
	}
	return findByID(faqs, id, faqID)
}

// AddFAQ appends a FAQ; a duplicate id is rejected.
func (s *Store) AddFAQ(f FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addRecord(s, faqsFile, f, faqID)
}

// UpdateFAQ replaces the FAQ with the given id.
func (s *Store) UpdateFAQ(id string, f FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateRecord(s, faqsFile, id, f, func(rec *FAQ, id string) { rec.ID = id }, faqID)
}

// DeleteFAQ removes the FAQ with the given id.
func (s *Store) DeleteFAQ(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteRecord[FAQ](s, faqsFile, id, faqID)
}

// Orders returns the order collection in storage order.
func (s *Store) Orders() ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readCollection[Order](s, ordersFile)
}

// OrderByID looks up a single order.
func (s *Store) OrderByID(id string) (Order, error) {
	orders, err := s.Orders()
	if err != nil {
		return Order{}, err
	}
	return findByID(orders, id, orderID)
}

// OrdersByUser returns the orders placed by one customer, in storage order,
// with each line item's Title resolved from the catalog. A product that no
// longer exists leaves the title empty.
func (s *Store) OrdersByUser(userID string) ([]Order, error) {
	orders, err := s.Orders()
	if err != nil {
		return nil, err
	}
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(products))
	for _, p := range products {
		titles[p.ID] = p.Title
	}

	var matched []Order
	for _, o := range orders {
		if o.UserID != userID {
			continue
		}
		for i := range o.Items {
			o.Items[i].Title = titles[o.Items[i].ProductID]
		}
		matched = append(matched, o)
	}
	return matched, nil
}

// AddOrder appends an order; a duplicate id is rejected.
func (s *Store) AddOrder(o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return addRecord(s, ordersFile, o, orderID)
}

// UpdateOrder replaces the order with the given id.
func (s *Store) UpdateOrder(id string, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return updateRecord(s, ordersFile, id, o, func(rec *Order, id string) { rec.ID = id }, orderID)
}

// DeleteOrder removes the order with the given id.
func (s *Store) DeleteOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deleteRecord[Order](s, ordersFile, id, orderID)
}
