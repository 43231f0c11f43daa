package chat

import (
	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
)

// decompose projects the accumulated context into the structured records
// matching the intent. The free-text answer carries everything else; only
// product and order intents return structured data.
func (s *Service) decompose(intent chat.Intent, c chat.Context) []any {
	switch intent {
	case chat.IntentProductInquiry:
		return productViews(c.Products)
	case chat.IntentProductRecommendation:
		return productViews(c.Recommended)
	case chat.IntentOrderManagement:
		return s.orderViews(c.Orders)
	default:
		return []any{}
	}
}

func productViews(products []catalog.Product) []any {
	views := make([]any, 0, len(products))
	for _, p := range products {
		views = append(views, p.View())
	}
	return views
}

func (s *Service) orderViews(orders []catalog.Order) []any {
	lookup := func(id string) (catalog.Product, bool) {
		p, err := s.store.ProductByID(id)
		return p, err == nil
	}
	views := make([]any, 0, len(orders))
	for _, o := range orders {
		views = append(views, o.View(lookup))
	}
	return views
}
