package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/interlux/chatbot/backend/internal/model/chat"
)

// ErrBackendUnavailable reports that the generation backend could not be
// reached within the timeout, after one retry. There is no cached answer:
// this is a hard failure for the caller.
var ErrBackendUnavailable = errors.New("generation backend unavailable")

const (
	// generateTimeout bounds one model invocation; one retry follows a failure.
	generateTimeout = 15 * time.Second

	// historyLimit caps the turns forwarded to the model.
	historyLimit = 10
)

// Service assembles the generation prompt and calls the chat model.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the generation chain over the supplied chat model.
func NewService(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chatModel: chatModel, chain: runnable}, nil
}

// ChatModel returns the underlying model so sibling services (the intent
// classifier) can reuse it.
func (s *Service) ChatModel() model.ChatModel {
	return s.chatModel
}

// Answer generates the assistant reply for the latest user message, grounded
// on the accumulated session context and recent history.
func (s *Service) Answer(ctx context.Context, sessionContext chat.Context, history []chat.Message, userMessage string) (string, error) {
	input := map[string]any{
		"system":  systemPrompt + "\n\n" + RenderContext(sessionContext),
		"history": historyMessages(history),
		"query":   userMessage,
	}

	response, err := s.invoke(ctx, input)
	if err != nil {
		return "", err
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return strings.TrimSpace(response.Content), nil
}

// invoke runs the chain under the timeout, retrying once before giving up.
func (s *Service) invoke(ctx context.Context, input map[string]any) (*schema.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, generateTimeout)
		response, err := s.chain.Invoke(callCtx, input)
		cancel()
		if err == nil {
			return response, nil
		}
		lastErr = err
		log.Printf("[ai] chain invoke failed (attempt %d): %v", attempt+1, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, lastErr)
}

// historyMessages converts the most recent session turns to model messages.
func historyMessages(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleBot:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
