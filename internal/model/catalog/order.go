package catalog

import "time"

// OrderItem is one purchased line of an order. FinalPrice is the price the
// customer actually paid for the chosen variation; zero means the catalog
// base price applies. Title is not persisted: OrdersByUser fills it from the
// catalog so downstream consumers can show names instead of ids.
type OrderItem struct {
	ProductID  string  `json:"productId"`
	Title      string  `json:"title,omitempty"`
	Quantity   int     `json:"quantity"`
	Variation  string  `json:"variation,omitempty"`
	FinalPrice float64 `json:"finalPrice,omitempty"`
}

// Order is a customer order as persisted in the orders collection.
type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"createdAt"`
	Items       []OrderItem `json:"products"`
}

// OrderItemView is the display projection of one order line, enriched with
// catalog details where the product still exists.
type OrderItemView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Variation string  `json:"variation,omitempty"`
}

// OrderView is the structured projection returned for order_management.
type OrderView struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	TotalAmount float64         `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Products    []OrderItemView `json:"products"`
}

// View projects the order for display. lookup resolves a product id to its
// catalog record; a nil result leaves title/image empty and uses the line's
// own price. Line price prefers the variant-specific final price over the
// catalog base price.
func (o Order) View(lookup func(id string) (Product, bool)) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		view := OrderItemView{
			ID:        item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.FinalPrice,
			Variation: item.Variation,
		}
		if lookup != nil {
			if p, ok := lookup(item.ProductID); ok {
				view.Title = p.Title
				view.Image = p.FirstImage()
				if view.Price == 0 {
					view.Price = p.Price
				}
			}
		}
		items = append(items, view)
	}
	return OrderView{
		ID:          o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
		Products:    items,
	}
}
