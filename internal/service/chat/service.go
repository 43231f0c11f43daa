package chat

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/model/chat"
	"github.com/interlux/chatbot/backend/internal/service/session"
)

// Classifier maps a message onto the fixed intent taxonomy.
type Classifier interface {
	Classify(ctx context.Context, message string) (chat.Intent, error)
}

// Retriever returns the records relevant to a message under an intent.
type Retriever interface {
	Retrieve(ctx context.Context, query string, intent chat.Intent) chat.Retrieved
}

// Generator produces the assistant reply from context, history and message.
type Generator interface {
	Answer(ctx context.Context, sessionContext chat.Context, history []chat.Message, userMessage string) (string, error)
}

// Reply is the outcome of one pipeline run.
type Reply struct {
	Response string         `json:"response"`
	Data     []any          `json:"data"`
	UserID   string         `json:"user_id"`
	History  []chat.Message `json:"history"`
}

// Service sequences the per-request pipeline: classify, retrieve, merge,
// generate, decompose. The session's accumulated context is the only state
// carried across requests.
type Service struct {
	sessions   *session.Registry
	classifier Classifier
	retriever  Retriever
	generator  Generator
	store      *catalog.Store
}

// NewService wires the pipeline collaborators.
func NewService(sessions *session.Registry, classifier Classifier, retriever Retriever, generator Generator, store *catalog.Store) *Service {
	return &Service{
		sessions:   sessions,
		classifier: classifier,
		retriever:  retriever,
		generator:  generator,
		store:      store,
	}
}

// Process runs one chat turn. An empty userID mints a fresh one, returned in
// the reply so the client can carry it forward. The per-session lock is held
// for the whole pipeline.
func (s *Service) Process(ctx context.Context, userID, message string) (Reply, error) {
	if userID == "" {
		userID = uuid.NewString()
	}

	sess, release := s.sessions.Lock(userID)
	defer release()

	intent, err := s.classifier.Classify(ctx, message)
	if err != nil {
		return Reply{}, err
	}

	if intent == chat.IntentOrderManagement && sess.Context.UserID != "" {
		orders, err := s.store.OrdersByUser(sess.Context.UserID)
		if err != nil {
			log.Printf("[chat] order lookup failed for user=%s: %v", sess.Context.UserID, err)
		} else {
			if orders == nil {
				orders = []catalog.Order{}
			}
			sess.Context.Merge(chat.Retrieved{Orders: orders})
		}
	}

	sess.Context.Merge(s.retriever.Retrieve(ctx, message, intent))

	answer, err := s.generator.Answer(ctx, sess.Context, sess.Messages, message)
	if err != nil {
		return Reply{}, err
	}

	data := s.decompose(intent, sess.Context)

	sess.Append(chat.RoleUser, message)
	sess.Append(chat.RoleBot, answer)
	s.sessions.Touch(sess)

	history := make([]chat.Message, len(sess.Messages))
	copy(history, sess.Messages)

	return Reply{
		Response: answer,
		Data:     data,
		UserID:   userID,
		History:  history,
	}, nil
}
