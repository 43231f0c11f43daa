package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/interlux/chatbot/backend/internal/config"
	"github.com/interlux/chatbot/backend/internal/handler"
	catalogModel "github.com/interlux/chatbot/backend/internal/model/catalog"
	"github.com/interlux/chatbot/backend/internal/service/ai"
	catalogService "github.com/interlux/chatbot/backend/internal/service/catalog"
	chatService "github.com/interlux/chatbot/backend/internal/service/chat"
	"github.com/interlux/chatbot/backend/internal/service/intent"
	"github.com/interlux/chatbot/backend/internal/service/retrieval"
	"github.com/interlux/chatbot/backend/internal/service/session"
	"github.com/interlux/chatbot/backend/internal/vectorstore"
	"github.com/interlux/chatbot/backend/internal/vectorstore/qdrant"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The generation backend is required: without it neither intent
	// classification nor answer synthesis can run.
	if !cfg.AI.Enabled() {
		log.Fatal("ark credentials missing: set ARK_API_KEY (or AK/SK pair) and ARK_MODEL")
	}

	store, err := catalogModel.NewStore(cfg.Catalog.DataDir)
	if err != nil {
		log.Fatalf("failed to open catalog store: %v", err)
	}

	chatModel, err := cfg.AI.NewChatModel(ctx)
	if err != nil {
		log.Fatalf("failed to create chat model: %v", err)
	}

	aiSvc, err := ai.NewService(ctx, chatModel)
	if err != nil {
		log.Fatalf("failed to initialize generation service: %v", err)
	}

	intentSvc, err := intent.NewService(ctx, chatModel)
	if err != nil {
		log.Fatalf("failed to initialize intent classifier: %v", err)
	}

	// The vector index is optional; retrieval stays correct through the
	// keyword fallback when it is missing or down.
	var index vectorstore.Index
	if cfg.Vector.Enabled() {
		embedder, err := cfg.Vector.NewEmbedder(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to create embedder, continuing without vector search: %v", err)
		} else {
			qdrantIndex, err := qdrant.New(qdrant.Config{
				URL:              cfg.Vector.QdrantURL,
				APIKey:           cfg.Vector.QdrantAPIKey,
				CollectionPrefix: cfg.Vector.CollectionPrefix,
			}, embedder)
			if err != nil {
				log.Printf("warning: failed to connect to qdrant, continuing without vector search: %v", err)
			} else {
				index = qdrantIndex
				defer qdrantIndex.Close()
				log.Println("vector index initialized successfully")
			}
		}
	} else {
		log.Println("vector index not configured, retrieval uses keyword search only")
	}

	catalogSvc := catalogService.NewService(store, index)
	if index != nil {
		go catalogSvc.ReindexAll(ctx)
	}

	sessions := session.NewRegistry(cfg.Session)
	go sessions.Run(ctx)

	retrievalSvc := retrieval.NewService(index, store)
	chatSvc := chatService.NewService(sessions, intentSvc, retrievalSvc, aiSvc, store)

	router := handler.NewRouter(chatSvc, catalogSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Interlux assistant backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
