package intent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/interlux/chatbot/backend/internal/model/chat"
	"github.com/interlux/chatbot/backend/internal/service/ai"
)

const classifySystemPrompt = `Classify the intent of the following message into exactly one of these categories:
- product_inquiry: asking about products, features, prices
- policy_inquiry: asking about warranty, return, shipping, payment policies
- order_management: checking orders, purchase history
- general_question: general questions about the store, services
- product_recommendation: asking for suitable product suggestions

Return only a single category.`

// classifyTimeout bounds one classification call; one retry follows a
// failure. There is no heuristic fallback: an unreachable backend surfaces
// as a retryable error to the orchestrator.
const classifyTimeout = 8 * time.Second

// Service maps free text onto the fixed intent taxonomy through the shared
// chat model. The model reply is free text; canonicalization happens in
// chat.CanonicalIntent.
type Service struct {
	classifier compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the classification chain over the supplied chat model.
func NewService(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifySystemPrompt),
		schema.UserMessage("Message: {message}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile intent classifier chain: %w", err)
	}

	return &Service{classifier: runnable}, nil
}

// Classify returns the canonical intent of the message.
func (s *Service) Classify(ctx context.Context, message string) (chat.Intent, error) {
	input := map[string]any{"message": message}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, classifyTimeout)
		reply, err := s.classifier.Invoke(callCtx, input)
		cancel()
		if err == nil {
			intent := chat.CanonicalIntent(reply.Content)
			log.Printf("[intent] classified message as %s", intent)
			return intent, nil
		}
		lastErr = err
		log.Printf("[intent] classifier invoke failed (attempt %d): %v", attempt+1, err)
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ai.ErrBackendUnavailable, lastErr)
}
