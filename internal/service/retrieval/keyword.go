package retrieval

import (
	"strings"
	"unicode"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
)

// Keyword fallback: case-insensitive match over a fixed field set per corpus,
// in storage order, truncated to the limit. The query is split into terms and
// a record matches when any term appears in a field, so full sentences still
// hit the records their keywords name.

// queryTerms lowercases the query and splits it on non-alphanumeric runes.
// Terms shorter than three runes are noise words and dropped; when nothing
// survives the whole trimmed query is the single term.
func queryTerms(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) >= 3 {
			terms = append(terms, w)
		}
	}
	if len(terms) == 0 && q != "" {
		terms = append(terms, q)
	}
	return terms
}

func containsAny(field string, terms []string) bool {
	f := strings.ToLower(field)
	for _, t := range terms {
		if strings.Contains(f, t) {
			return true
		}
	}
	return false
}

func matchProducts(products []catalog.Product, query string, limit int) []catalog.Product {
	terms := queryTerms(query)
	matched := make([]catalog.Product, 0, limit)
	for _, p := range products {
		if len(matched) == limit {
			break
		}
		if productMatches(p, terms) {
			matched = append(matched, p)
		}
	}
	return matched
}

func productMatches(p catalog.Product, terms []string) bool {
	if containsAny(p.Title, terms) ||
		containsAny(p.Description, terms) ||
		containsAny(p.CategoryName, terms) ||
		containsAny(p.Slug, terms) {
		return true
	}
	for _, v := range p.Variations {
		if containsAny(v.SKU, terms) {
			return true
		}
	}
	return false
}

func matchPolicies(policies []catalog.Policy, query string, limit int) []catalog.Policy {
	terms := queryTerms(query)
	matched := make([]catalog.Policy, 0, limit)
	for _, p := range policies {
		if len(matched) == limit {
			break
		}
		if containsAny(p.Title, terms) || containsAny(p.Content, terms) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchFAQs(faqs []catalog.FAQ, query string, limit int) []catalog.FAQ {
	terms := queryTerms(query)
	matched := make([]catalog.FAQ, 0, limit)
	for _, f := range faqs {
		if len(matched) == limit {
			break
		}
		if containsAny(f.Question, terms) || containsAny(f.Answer, terms) {
			matched = append(matched, f)
		}
	}
	return matched
}
