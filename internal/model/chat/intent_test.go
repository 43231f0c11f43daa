package chat

import "testing"

func TestCanonicalIntentMatchesLabels(t *testing.T) {
	cases := map[string]Intent{
		"product_inquiry":                        IntentProductInquiry,
		"The intent is POLICY_INQUIRY.":          IntentPolicyInquiry,
		"order_management":                       IntentOrderManagement,
		"  Product_Recommendation  ":             IntentProductRecommendation,
		"general_question":                       IntentGeneralQuestion,
		"I think this is a product_inquiry one.": IntentProductInquiry,
	}

	for reply, want := range cases {
		if got := CanonicalIntent(reply); got != want {
			t.Fatalf("CanonicalIntent(%q) = %s, want %s", reply, got, want)
		}
	}
}

func TestCanonicalIntentDefaultsToGeneralQuestion(t *testing.T) {
	for _, reply := range []string{"", "no idea", "greeting", "product", "policy"} {
		if got := CanonicalIntent(reply); got != IntentGeneralQuestion {
			t.Fatalf("CanonicalIntent(%q) = %s, want %s", reply, got, IntentGeneralQuestion)
		}
	}
}

func TestCanonicalIntentPrecedence(t *testing.T) {
	// When a reply mentions several labels, the fixed precedence order wins.
	reply := "could be order_management or policy_inquiry or product_inquiry"
	if got := CanonicalIntent(reply); got != IntentProductInquiry {
		t.Fatalf("CanonicalIntent precedence: got %s, want %s", got, IntentProductInquiry)
	}

	reply = "product_recommendation or order_management"
	if got := CanonicalIntent(reply); got != IntentOrderManagement {
		t.Fatalf("CanonicalIntent precedence: got %s, want %s", got, IntentOrderManagement)
	}
}
