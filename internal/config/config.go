package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/rag-assistant/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Vector store backends
const (
	StoreBackendPGVector = "pgvector"
	StoreBackendFile     = "file"
)

// pgvectorDimensions is fixed by the vector_store migration.
const pgvectorDimensions = 1536

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration, required by the pgvector store backend only
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Generation provider
	OpenAICfg OpenAIConfig `envPrefix:"OPENAI_"`

	// Document ingestion and retrieval
	RAGCfg RAGConfig `envPrefix:"RAG_"`

	// Prompt template overrides
	PromptCfg PromptConfig `envPrefix:"PROMPT_"`

	// Image and audio endpoints
	MediaCfg MediaConfig `envPrefix:"MEDIA_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type OpenAIConfig struct {
	HTTPClientConfig
	APIKey             string               `env:"API_KEY"`
	ChatModel          string               `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel     string               `env:"EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`
	ImageModel         string               `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	TranscriptionModel string               `env:"TRANSCRIPTION_MODEL" envDefault:"whisper-1"`
	SpeechModel        string               `env:"SPEECH_MODEL" envDefault:"tts-1"`
	Temperature        float32              `env:"TEMPERATURE" envDefault:"0.7"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"100s"`
	Url                   string        `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
}

type RAGConfig struct {
	DocumentPath        string        `env:"DOCUMENT_PATH" envDefault:"rag_data/Constitution_of_the_Republic_of_Bulgaria.pdf"`
	StoreBackend        string        `env:"STORE_BACKEND" envDefault:"pgvector"`
	StoreFile           string        `env:"STORE_FILE" envDefault:"vector_store.json"`
	TopK                int           `env:"TOP_K" envDefault:"5"`
	ChunkSizeTokens     int           `env:"CHUNK_SIZE_TOKENS" envDefault:"800"`
	MinChunkSizeChars   int           `env:"MIN_CHUNK_SIZE_CHARS" envDefault:"350"`
	EmbeddingDimensions int           `env:"EMBEDDING_DIMENSIONS" envDefault:"1536"`
	EmbeddingBatchSize  int           `env:"EMBEDDING_BATCH_SIZE" envDefault:"64"`
	QueryCacheTTL       time.Duration `env:"QUERY_CACHE_TTL" envDefault:"10m"`
}

// PromptConfig points at template files that replace the embedded defaults.
type PromptConfig struct {
	RAGFile   string `env:"RAG_FILE"`
	CelebFile string `env:"CELEB_FILE"`
}

type MediaConfig struct {
	MaxImageFileSize int64  `env:"MAX_IMAGE_FILE_SIZE" envDefault:"10485760"` // 10 MiB
	MaxAudioFileSize int64  `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
	DefaultImage     string `env:"DEFAULT_IMAGE" envDefault:"images/plane.png"`
	DefaultAudio     string `env:"DEFAULT_AUDIO" envDefault:"audios/song-1.mp3"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// LoadConfig reads the -env flag and loads the matching configuration.
func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load loads .env.<environment> when present and parses the process environment.
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate RAG configuration
	if cfg.RAGCfg.TopK < 1 || cfg.RAGCfg.TopK > 100 {
		errors = append(errors, fmt.Sprintf("RAG_TOP_K must be between 1 and 100, got %d", cfg.RAGCfg.TopK))
	}

	if cfg.RAGCfg.ChunkSizeTokens < 16 || cfg.RAGCfg.ChunkSizeTokens > 8191 {
		errors = append(errors, fmt.Sprintf("RAG_CHUNK_SIZE_TOKENS must be between 16 and 8191, got %d", cfg.RAGCfg.ChunkSizeTokens))
	}

	if cfg.RAGCfg.MinChunkSizeChars < 0 {
		errors = append(errors, fmt.Sprintf("RAG_MIN_CHUNK_SIZE_CHARS must not be negative, got %d", cfg.RAGCfg.MinChunkSizeChars))
	}

	if cfg.RAGCfg.QueryCacheTTL <= 0 {
		errors = append(errors, fmt.Sprintf("RAG_QUERY_CACHE_TTL must be positive, got %s", cfg.RAGCfg.QueryCacheTTL))
	}

	if cfg.RAGCfg.EmbeddingBatchSize < 1 || cfg.RAGCfg.EmbeddingBatchSize > 2048 {
		errors = append(errors, fmt.Sprintf("RAG_EMBEDDING_BATCH_SIZE must be between 1 and 2048, got %d", cfg.RAGCfg.EmbeddingBatchSize))
	}

	if cfg.RAGCfg.DocumentPath == "" {
		errors = append(errors, "RAG_DOCUMENT_PATH must be set")
	}

	switch cfg.RAGCfg.StoreBackend {
	case StoreBackendPGVector:
		if cfg.DatabaseURL == "" {
			errors = append(errors, "DATABASE_URL must be set for the pgvector store backend")
		}
		if cfg.RAGCfg.EmbeddingDimensions != pgvectorDimensions {
			errors = append(errors, fmt.Sprintf("RAG_EMBEDDING_DIMENSIONS must be %d for the pgvector store backend, got %d", pgvectorDimensions, cfg.RAGCfg.EmbeddingDimensions))
		}
	case StoreBackendFile:
		if cfg.RAGCfg.StoreFile == "" {
			errors = append(errors, "RAG_STORE_FILE must be set for the file store backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("RAG_STORE_BACKEND must be %q or %q, got %q", StoreBackendPGVector, StoreBackendFile, cfg.RAGCfg.StoreBackend))
	}

	if cfg.RAGCfg.EmbeddingDimensions < 1 {
		errors = append(errors, fmt.Sprintf("RAG_EMBEDDING_DIMENSIONS must be positive, got %d", cfg.RAGCfg.EmbeddingDimensions))
	}

	// Validate provider configuration
	if !cfg.EnableMocks && cfg.OpenAICfg.APIKey == "" {
		errors = append(errors, "OPENAI_API_KEY must be set unless ENABLE_MOCKS is true")
	}

	// Validate Telegram configuration
	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
