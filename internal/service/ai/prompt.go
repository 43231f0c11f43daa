package ai

import (
	"fmt"
	"strings"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
)

// systemPrompt is the standing instruction set for the assistant. The reply
// must mirror the customer's language, and when the supplied database
// information is empty the model is instructed to say so honestly instead of
// inventing an answer.
const systemPrompt = `You are the virtual assistant of Interlux, a premium furniture store. Your job is to help customers with:

1. Sales advice: introduce products, features, prices, and help customers find the right product.
2. Policy advice: provide information about warranty, returns, shipping, and payment policies.
3. Order management: help customers check order status and purchase history.
4. Answering questions: resolve customer questions about products and services.
5. Product recommendations: suggest suitable products based on customer needs.

IMPORTANT:
- Reply in the SAME LANGUAGE the customer uses (Vietnamese or English).
- Reply politely, professionally and helpfully.
- ONLY use information from the database provided below.
- NEVER invent or fabricate information that is not in the data.
- If you have no information or do not know the answer, honestly say you do not have that information.
- If the information is inaccurate or incomplete, say clearly that you only have limited information.

RESPONSE FORMAT:
- Use Markdown to present information clearly and with structure.
- Use headings, lists, and paragraphs to organize the information.
- NEVER provide vague information with no practical value.

IMAGE DISPLAY:
- When showing images, ALWAYS place all of them at the end of the reply.
- Use this dedicated format:
  ` + "```image-gallery" + `
  [Image title 1](image_URL_1)
  [Image title 2](image_URL_2)
  ...
  ` + "```" + `
- Keep each image URL on its own line inside the image-gallery block.
- Always place the image-gallery block at the end, after the main content.`

// RenderContext serializes the accumulated session context into the
// natural-language block embedded verbatim in the prompt. Field order is
// stable so identical context always renders identically.
func RenderContext(c chat.Context) string {
	var b strings.Builder
	b.WriteString("Information from the database:\n")

	if len(c.Products) > 0 {
		b.WriteString("\nProducts:\n")
		for _, p := range c.Products {
			writeProduct(&b, p)
		}
	}

	if len(c.Policies) > 0 {
		b.WriteString("\nPolicies:\n")
		for _, p := range c.Policies {
			fmt.Fprintf(&b, "- %s: %s\n", p.Title, p.Content)
		}
	}

	if len(c.FAQs) > 0 {
		b.WriteString("\nFrequently asked questions:\n")
		for _, f := range c.FAQs {
			fmt.Fprintf(&b, "- Question: %s\n  Answer: %s\n", f.Question, f.Answer)
		}
	}

	if len(c.Recommended) > 0 {
		b.WriteString("\nRecommended products:\n")
		for _, p := range c.Recommended {
			writeProduct(&b, p)
		}
	}

	if len(c.Orders) > 0 {
		b.WriteString("\nOrders:\n")
		for _, o := range c.Orders {
			writeOrder(&b, o)
		}
	}

	return b.String()
}

func writeProduct(b *strings.Builder, p catalog.Product) {
	fmt.Fprintf(b, "- Name: %s\n", p.Title)
	description := p.Description
	if description == "" {
		description = "No description"
	}
	fmt.Fprintf(b, "  Description: %s\n", description)
	fmt.Fprintf(b, "  Price: %.0f VND", p.Price)
	if p.PercentOff > 0 {
		fmt.Fprintf(b, " (Discount: %.0f%%)", p.PercentOff)
	}
	b.WriteString("\n")

	if p.CategoryName != "" {
		fmt.Fprintf(b, "  Category: %s\n", p.CategoryName)
	}

	if len(p.Variations) > 0 {
		b.WriteString("  Variations:\n")
		variations := p.Variations
		if len(variations) > 3 {
			variations = variations[:3]
		}
		for _, v := range variations {
			fmt.Fprintf(b, "    * %s: %.0f VND", v.SKU, v.Price)
			if v.PercentOff > 0 {
				fmt.Fprintf(b, " (Discount: %.0f%%)", v.PercentOff)
			}
			b.WriteString("\n")
		}
	}

	if len(p.Images) > 0 {
		b.WriteString("  Images:\n")
		for idx, img := range p.Images {
			if img.FilePath != "" {
				fmt.Fprintf(b, "    * Image %d: %s\n", idx+1, img.FilePath)
			}
		}
	}
}

func writeOrder(b *strings.Builder, o catalog.Order) {
	fmt.Fprintf(b, "- Order ID: %s\n", o.ID)
	fmt.Fprintf(b, "  Status: %s\n", o.Status)
	fmt.Fprintf(b, "  Total: %.0f VND\n", o.TotalAmount)
	b.WriteString("  Products:\n")
	for _, item := range o.Items {
		name := item.Title
		if name == "" {
			name = item.ProductID
		}
		fmt.Fprintf(b, "    + %s - Quantity: %d", name, item.Quantity)
		if item.Variation != "" {
			fmt.Fprintf(b, " - Variation: %s", item.Variation)
		}
		if item.FinalPrice > 0 {
			fmt.Fprintf(b, " - Price: %.0f VND", item.FinalPrice)
		}
		b.WriteString("\n")
	}
}
