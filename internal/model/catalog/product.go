package catalog

// Image references one product photo by storage path.
type Image struct {
	FilePath string `json:"filePath"`
}

// Variation is one purchasable variant (SKU) of a product. FinalPrice is the
// catalog-computed price after discount; IsDefault marks the canonical
// variant used for display pricing.
type Variation struct {
	SKU        string  `json:"sku"`
	Price      float64 `json:"price"`
	PercentOff float64 `json:"percentOff"`
	FinalPrice float64 `json:"finalPrice"`
	IsDefault  bool    `json:"isDefault"`
}

// Product is a catalog record as persisted in the products collection.
type Product struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	PercentOff   float64     `json:"percentOff"`
	SoldCount    int         `json:"soldCount"`
	CategoryName string      `json:"categoryName"`
	Images       []Image     `json:"images,omitempty"`
	Variations   []Variation `json:"variations,omitempty"`
}

// DefaultVariation returns the catalog-marked default variant, if any.
func (p Product) DefaultVariation() (Variation, bool) {
	for _, v := range p.Variations {
		if v.IsDefault {
			return v, true
		}
	}
	return Variation{}, false
}

// FirstImage returns the path of the first product photo, or "".
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].FilePath
}

// ProductView is the structured projection returned alongside the chat answer
// for product-related intents. Price carries the default variation's final
// price when one exists; OriginalPrice is always the base price.
type ProductView struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	PercentOff    float64 `json:"percentOff"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Slug          string  `json:"slug"`
	Sold          int     `json:"sold"`
}

// View projects the product for display.
func (p Product) View() ProductView {
	price := p.Price
	if v, ok := p.DefaultVariation(); ok {
		price = v.FinalPrice
	}
	return ProductView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Price:         price,
		OriginalPrice: p.Price,
		PercentOff:    p.PercentOff,
		Image:         p.FirstImage(),
		Category:      p.CategoryName,
		Slug:          p.Slug,
		Sold:          p.SoldCount,
	}
}
