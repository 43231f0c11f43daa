package catalog

import (
	"errors"
	"os"
	"time"
)

// writeSeedData initializes any missing collection file with the sample
// catalog, so a fresh checkout answers questions out of the box.
func (s *Store) writeSeedData() error {
	if err := seedFile(s, productsFile, seedProducts()); err != nil {
		return err
	}
	if err := seedFile(s, policiesFile, seedPolicies()); err != nil {
		return err
	}
	if err := seedFile(s, faqsFile, seedFAQs()); err != nil {
		return err
	}
	return seedFile(s, ordersFile, seedOrders())
}

func seedFile[T any](s *Store, file string, records []T) error {
	if _, err := os.Stat(s.path(file)); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return writeCollection(s, file, records)
}

func seedProducts() []Product {
	return []Product{
		{
			ID:           "p1",
			Title:        "Sofa Elegance",
			Slug:         "sofa-elegance",
			Description:  "Premium genuine-leather sofa with a modern, elegant silhouette and an oak frame.",
			Price:        25000000,
			PercentOff:   10,
			SoldCount:    128,
			CategoryName: "sofa",
			Images:       []Image{{FilePath: "/static/images/sofa-elegance.jpg"}},
			Variations: []Variation{
				{SKU: "SOFA-EL-2S", Price: 25000000, PercentOff: 10, FinalPrice: 22500000, IsDefault: true},
				{SKU: "SOFA-EL-3S", Price: 32000000, PercentOff: 5, FinalPrice: 30400000},
			},
		},
		{
			ID:           "p2",
			Title:        "Harmony Dining Table",
			Slug:         "harmony-dining-table",
			Description:  "Natural oak dining table, refined design, seats a family of six. 180x90cm.",
			Price:        15000000,
			SoldCount:    73,
			CategoryName: "dining table",
			Images:       []Image{{FilePath: "/static/images/harmony-dining-table.jpg"}},
		},
		{
			ID:           "p3",
			Title:        "Luxury Bed",
			Slug:         "luxury-bed",
			Description:  "King-size bed with a leather-upholstered headboard and a natural-wood frame. 200x200cm.",
			Price:        35000000,
			PercentOff:   5,
			SoldCount:    41,
			CategoryName: "bedroom",
			Images:       []Image{{FilePath: "/static/images/luxury-bed.jpg"}},
			Variations: []Variation{
				{SKU: "BED-LUX-KING", Price: 35000000, PercentOff: 5, FinalPrice: 33250000, IsDefault: true},
			},
		},
	}
}

func seedPolicies() []Policy {
	return []Policy{
		{
			ID:      "pol1",
			Title:   "Warranty policy",
			Content: "All Interlux furniture is covered by a 1 to 5 year warranty depending on the product line. Keep your invoice and warranty card to claim support.",
		},
		{
			ID:      "pol2",
			Title:   "Return policy",
			Content: "Products can be returned within 7 days of delivery for manufacturer defects. Returned items must be intact and show no signs of use.",
		},
		{
			ID:      "pol3",
			Title:   "Shipping policy",
			Content: "Interlux ships free within Hanoi and Ho Chi Minh City for orders above 10 million VND. Elsewhere, shipping is quoted by distance and volume.",
		},
		{
			ID:      "pol4",
			Title:   "Payment policy",
			Content: "We accept cash, bank transfer, and credit cards. Orders above 50 million VND qualify for 0% installments over the first 6 months.",
		},
	}
}

func seedFAQs() []FAQ {
	return []FAQ{
		{
			ID:       "faq1",
			Question: "How do I place an order?",
			Answer:   "Order directly on the website, via the hotline 1900xxxx, or at any Interlux showroom.",
		},
		{
			ID:       "faq2",
			Question: "How long does delivery take?",
			Answer:   "Usually 3-5 days for in-stock items and 15-30 days for made-to-order pieces.",
		},
		{
			ID:       "faq3",
			Question: "Is assembly included?",
			Answer:   "Yes, Interlux provides free assembly for all furniture purchases.",
		},
		{
			ID:       "faq4",
			Question: "How should I care for my furniture?",
			Answer:   "Each product ships with its own care guide. In general, avoid direct sunlight and high humidity, and clean regularly with dedicated products.",
		},
	}
}

func seedOrders() []Order {
	return []Order{
		{
			ID:          "o1",
			UserID:      "u1",
			Status:      "delivered",
			TotalAmount: 22500000,
			CreatedAt:   time.Date(2025, 5, 12, 9, 30, 0, 0, time.UTC),
			Items: []OrderItem{
				{ProductID: "p1", Quantity: 1, Variation: "SOFA-EL-2S", FinalPrice: 22500000},
			},
		},
		{
			ID:          "o2",
			UserID:      "u2",
			Status:      "processing",
			TotalAmount: 48250000,
			CreatedAt:   time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
			Items: []OrderItem{
				{ProductID: "p2", Quantity: 1},
				{ProductID: "p3", Quantity: 1, Variation: "BED-LUX-KING", FinalPrice: 33250000},
			},
		},
	}
}
