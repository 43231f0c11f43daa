package chat

import "strings"

// Intent is the classified purpose of an inbound message. It selects which
// corpus the retrieval router queries.
type Intent string

const (
	IntentProductInquiry        Intent = "product_inquiry"
	IntentPolicyInquiry         Intent = "policy_inquiry"
	IntentOrderManagement       Intent = "order_management"
	IntentGeneralQuestion       Intent = "general_question"
	IntentProductRecommendation Intent = "product_recommendation"
)

// canonicalOrder fixes the precedence used when a model reply mentions more
// than one label. general_question is the default, not a matchable label.
var canonicalOrder = []Intent{
	IntentProductInquiry,
	IntentPolicyInquiry,
	IntentOrderManagement,
	IntentProductRecommendation,
}

// CanonicalIntent maps a free-text classifier reply onto one of the five
// canonical intents by case-insensitive substring containment, tested in
// fixed precedence order. Anything unrecognized is a general question.
func CanonicalIntent(reply string) Intent {
	normalized := strings.ToLower(reply)
	for _, intent := range canonicalOrder {
		if strings.Contains(normalized, string(intent)) {
			return intent
		}
	}
	return IntentGeneralQuestion
}
