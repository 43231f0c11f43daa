package ai

import (
	"strings"
	"testing"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
)

func sampleContext() chat.Context {
	return chat.Context{
		Products: []catalog.Product{
			{
				ID:           "p1",
				Title:        "Sofa Elegance",
				Description:  "Leather sofa.",
				Price:        25000000,
				PercentOff:   10,
				CategoryName: "sofa",
				Images:       []catalog.Image{{FilePath: "/static/images/sofa.jpg"}},
				Variations: []catalog.Variation{
					{SKU: "S-1", Price: 25000000, PercentOff: 10},
					{SKU: "S-2", Price: 32000000},
					{SKU: "S-3", Price: 40000000},
					{SKU: "S-4", Price: 45000000},
				},
			},
		},
		Policies: []catalog.Policy{{ID: "pol1", Title: "Warranty", Content: "5 years."}},
		FAQs:     []catalog.FAQ{{ID: "faq1", Question: "Delivery?", Answer: "3-5 days."}},
		Orders: []catalog.Order{{
			ID: "o1", Status: "delivered", TotalAmount: 22500000,
			Items: []catalog.OrderItem{{ProductID: "p1", Title: "Sofa Elegance", Quantity: 1, Variation: "S-1", FinalPrice: 22500000}},
		}},
	}
}

func TestRenderContextSections(t *testing.T) {
	got := RenderContext(sampleContext())

	for _, want := range []string{
		"Information from the database:",
		"Products:",
		"- Name: Sofa Elegance",
		"Price: 25000000 VND (Discount: 10%)",
		"Category: sofa",
		"* Image 1: /static/images/sofa.jpg",
		"Policies:",
		"- Warranty: 5 years.",
		"Frequently asked questions:",
		"- Question: Delivery?",
		"Orders:",
		"- Order ID: o1",
		"Status: delivered",
		"+ Sofa Elegance - Quantity: 1 - Variation: S-1 - Price: 22500000 VND",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("render missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderContextCapsVariations(t *testing.T) {
	got := RenderContext(sampleContext())
	if !strings.Contains(got, "* S-3:") {
		t.Fatalf("third variation missing:\n%s", got)
	}
	if strings.Contains(got, "S-4") {
		t.Fatalf("variations not capped at three:\n%s", got)
	}
}

func TestRenderContextIsDeterministic(t *testing.T) {
	c := sampleContext()
	first := RenderContext(c)
	for i := 0; i < 5; i++ {
		if got := RenderContext(c); got != first {
			t.Fatalf("render changed between calls")
		}
	}
}

func TestRenderContextEmpty(t *testing.T) {
	got := RenderContext(chat.Context{})
	if got != "Information from the database:\n" {
		t.Fatalf("unexpected empty render: %q", got)
	}
	if strings.Contains(got, "Products:") {
		t.Fatalf("empty context must render no sections")
	}
}

func TestRenderContextOrderLineFallsBackToID(t *testing.T) {
	c := chat.Context{Orders: []catalog.Order{{
		ID: "o9", Status: "processing",
		Items: []catalog.OrderItem{{ProductID: "p-gone", Quantity: 2}},
	}}}
	got := RenderContext(c)
	if !strings.Contains(got, "+ p-gone - Quantity: 2") {
		t.Fatalf("unresolved line should render the product id:\n%s", got)
	}
}

func TestRenderContextDefaultsDescription(t *testing.T) {
	c := chat.Context{Products: []catalog.Product{{ID: "p9", Title: "Bare"}}}
	got := RenderContext(c)
	if !strings.Contains(got, "Description: No description") {
		t.Fatalf("missing description placeholder:\n%s", got)
	}
}
