package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	arkembedding "github.com/cloudwego/eino-ext/components/embedding/ark"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates all service configuration.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Vector  VectorConfig
	Session SessionConfig
	Catalog CatalogConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		AI:      ai,
		Vector:  loadVectorConfig(),
		Session: session,
		Catalog: CatalogConfig{DataDir: getEnvOrDefault("DATA_DIR", "./data")},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the Ark generation backend.
type AIConfig struct {
	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Enabled reports whether the required credentials were supplied.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel builds an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials missing: set ARK_API_KEY + ARK_MODEL or the AK/SK pair")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:   strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:   strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:       strings.TrimSpace(os.Getenv("ARK_MODEL")),
		BaseURL:     getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:      getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
	}, nil
}

// VectorConfig describes the optional Qdrant index and its embedder. When
// disabled, retrieval runs on the keyword fallback alone.
type VectorConfig struct {
	QdrantURL        string
	QdrantAPIKey     string
	CollectionPrefix string
	EmbeddingModel   string
}

// Enabled reports whether the vector path can be initialized.
func (c VectorConfig) Enabled() bool {
	return c.QdrantURL != "" && c.EmbeddingModel != ""
}

// NewEmbedder builds an Ark embedder from the configuration, reusing the
// chat credentials.
func (c VectorConfig) NewEmbedder(ctx context.Context, ai AIConfig) (embedding.Embedder, error) {
	return arkembedding.NewEmbedder(ctx, &arkembedding.EmbeddingConfig{
		APIKey:    ai.APIKey,
		AccessKey: ai.AccessKey,
		SecretKey: ai.SecretKey,
		Region:    ai.Region,
		BaseURL:   ai.BaseURL,
		Model:     c.EmbeddingModel,
	})
}

func loadVectorConfig() VectorConfig {
	return VectorConfig{
		QdrantURL:        strings.TrimSpace(os.Getenv("QDRANT_URL")),
		QdrantAPIKey:     strings.TrimSpace(os.Getenv("QDRANT_API_KEY")),
		CollectionPrefix: getEnvOrDefault("QDRANT_COLLECTION_PREFIX", "interlux"),
		EmbeddingModel:   strings.TrimSpace(os.Getenv("ARK_EMBEDDING_MODEL")),
	}
}

// SessionConfig describes session lifetime and reaping.
type SessionConfig struct {
	Timeout      time.Duration
	ReapInterval time.Duration
	HighWater    int
}

func loadSessionConfig() (SessionConfig, error) {
	timeoutHours, err := parseOptionalIntEnv("SESSION_TIMEOUT_HOURS")
	if err != nil {
		return SessionConfig{}, err
	}
	timeout := 24 * time.Hour
	if timeoutHours != nil {
		if *timeoutHours < 1 {
			return SessionConfig{}, fmt.Errorf("SESSION_TIMEOUT_HOURS must be positive")
		}
		timeout = time.Duration(*timeoutHours) * time.Hour
	}

	reapMinutes, err := parseOptionalIntEnv("SESSION_REAP_MINUTES")
	if err != nil {
		return SessionConfig{}, err
	}
	reapInterval := 5 * time.Minute
	if reapMinutes != nil {
		if *reapMinutes < 1 {
			return SessionConfig{}, fmt.Errorf("SESSION_REAP_MINUTES must be positive")
		}
		reapInterval = time.Duration(*reapMinutes) * time.Minute
	}

	highWater, err := parseOptionalIntEnv("SESSION_HIGH_WATER")
	if err != nil {
		return SessionConfig{}, err
	}
	water := 100
	if highWater != nil {
		water = *highWater
	}

	return SessionConfig{
		Timeout:      timeout,
		ReapInterval: reapInterval,
		HighWater:    water,
	}, nil
}

// CatalogConfig describes where the catalog collection files live.
type CatalogConfig struct {
	DataDir string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
