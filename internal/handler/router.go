package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	catalogHandler "github.com/interlux/chatbot/backend/internal/handler/catalog"
	chatHandler "github.com/interlux/chatbot/backend/internal/handler/chat"
	middlewarePkg "github.com/interlux/chatbot/backend/internal/middleware"
	catalogService "github.com/interlux/chatbot/backend/internal/service/catalog"
	chatService "github.com/interlux/chatbot/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, catalogSvc *catalogService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc).RegisterRoutes(api)
		catalogHandler.New(catalogSvc).RegisterRoutes(api)
	})

	return r
}
