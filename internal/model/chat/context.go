package chat

import "github.com/interlux/chatbot/backend/internal/model/catalog"

// Context is the retrieved knowledge accumulated over the turns of one
// session and rendered into every subsequent prompt. The field set is fixed;
// a later retrieval routed to the same key overwrites it, even with an empty
// result, and every other key persists until the session is reaped. Earlier
// products stay in play while the customer asks about policies.
type Context struct {
	UserID      string
	Products    []catalog.Product
	Policies    []catalog.Policy
	FAQs        []catalog.FAQ
	Recommended []catalog.Product
	Orders      []catalog.Order
}

// Retrieved is the outcome of one retrieval pass. A nil key means the router
// did not search that corpus; a non-nil empty key means it searched and found
// nothing.
type Retrieved struct {
	Products    []catalog.Product
	Policies    []catalog.Policy
	FAQs        []catalog.FAQ
	Recommended []catalog.Product
	Orders      []catalog.Order
}

// Merge folds a retrieval result into the context, overwriting exactly the
// keys the router searched. A search that found nothing clears the key, so a
// stale result is never re-served for a fresh query.
func (c *Context) Merge(r Retrieved) {
	if r.Products != nil {
		c.Products = r.Products
	}
	if r.Policies != nil {
		c.Policies = r.Policies
	}
	if r.FAQs != nil {
		c.FAQs = r.FAQs
	}
	if r.Recommended != nil {
		c.Recommended = r.Recommended
	}
	if r.Orders != nil {
		c.Orders = r.Orders
	}
}

// Empty reports whether no records have been retrieved yet.
func (c Context) Empty() bool {
	return len(c.Products) == 0 && len(c.Policies) == 0 && len(c.FAQs) == 0 &&
		len(c.Recommended) == 0 && len(c.Orders) == 0
}
