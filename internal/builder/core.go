package builder

import (
	"context"
	"fmt"

	"github.com/futig/rag-assistant/internal/config"
	"github.com/futig/rag-assistant/internal/entity"
	"github.com/futig/rag-assistant/internal/integration/openai"
	"github.com/futig/rag-assistant/internal/pkg/formatter"
	"github.com/futig/rag-assistant/internal/pkg/logger"
	"github.com/futig/rag-assistant/internal/pkg/prompt"
	"github.com/futig/rag-assistant/internal/pkg/reader"
	"github.com/futig/rag-assistant/internal/pkg/splitter"
	"github.com/futig/rag-assistant/internal/repository"
	"github.com/futig/rag-assistant/internal/usecase/rag"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// provider is implemented by both the OpenAI client and its mock.
type provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteMessages(ctx context.Context, msgs []entity.Message) (string, error)
	CompleteJSON(ctx context.Context, msgs []entity.Message) (string, error)
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	DescribeImage(ctx context.Context, img entity.ImageInput) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Transcribe(ctx context.Context, audio entity.AudioInput) (string, error)
	Speech(ctx context.Context, text string) ([]byte, error)
}

// Core holds the components shared by the HTTP server, the Telegram bot and ragctl.
type Core struct {
	Cfg        *config.Config
	Logger     *zap.Logger
	Provider   provider
	Ingestor   *rag.Ingestor
	Answerer   *rag.Answerer
	Formatters *formatter.Factory

	db *pgxpool.Pool
}

// BuildCore wires logging, the provider, the vector store and the RAG usecases.
// It does not ingest; callers decide when to call Ingestor.IngestIfEmpty.
func BuildCore(ctx context.Context, cfg *config.Config) (*Core, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building core components",
		zap.String("environment", cfg.Environment),
		zap.String("store_backend", cfg.RAGCfg.StoreBackend),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	var llm provider
	if cfg.EnableMocks {
		log.Info("Using mock provider for external services")
		llm = openai.NewMockClient(cfg.RAGCfg.EmbeddingDimensions, log)
	} else {
		log.Info("Using OpenAI provider", zap.String("base_url", cfg.OpenAICfg.Url))
		llm = openai.NewClient(cfg.OpenAICfg, cfg.RAGCfg.EmbeddingDimensions, log)
	}
	embedder := openai.NewCachedEmbedder(llm, cfg.RAGCfg.QueryCacheTTL)

	core := &Core{
		Cfg:        cfg,
		Logger:     log,
		Provider:   llm,
		Formatters: formatter.NewFactory(),
	}

	store, err := core.setupStore(ctx, embedder)
	if err != nil {
		core.Close()
		return nil, err
	}

	textSplitter, err := splitter.New(splitter.Options{
		ChunkSize:         cfg.RAGCfg.ChunkSizeTokens,
		MinChunkSizeChars: cfg.RAGCfg.MinChunkSizeChars,
	})
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("setup splitter: %w", err)
	}

	ragTemplate, err := prompt.LoadFile(cfg.PromptCfg.RAGFile, prompt.RAG())
	if err != nil {
		core.Close()
		return nil, err
	}

	core.Ingestor = rag.NewIngestor(store, reader.New(), textSplitter, cfg.RAGCfg)
	core.Answerer = rag.NewAnswerer(store, llm, ragTemplate, cfg.RAGCfg)

	log.Info("Core components initialized", zap.String("rag_template", ragTemplate.Name()))

	return core, nil
}

func (c *Core) setupStore(ctx context.Context, embedder repository.Embedder) (rag.VectorStore, error) {
	switch c.Cfg.RAGCfg.StoreBackend {
	case config.StoreBackendFile:
		store, err := repository.OpenVectorStoreFile(c.Cfg.RAGCfg.StoreFile, embedder, c.Cfg.RAGCfg.EmbeddingBatchSize)
		if err != nil {
			return nil, fmt.Errorf("open file vector store: %w", err)
		}
		c.Logger.Info("File vector store opened", zap.String("path", c.Cfg.RAGCfg.StoreFile))
		return store, nil
	default:
		db, err := openVectorDatabase(ctx, c.Cfg, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}
		c.db = db

		return repository.NewVectorStorePostgres(db, embedder, c.Cfg.RAGCfg.EmbeddingBatchSize), nil
	}
}

// Ingest loads the configured document unless the store already holds records.
func (c *Core) Ingest(ctx context.Context) (*entity.IngestionReport, error) {
	c.Logger.Info("Checking document ingestion", zap.String("document", c.Cfg.RAGCfg.DocumentPath))

	report, err := c.Ingestor.IngestIfEmpty(logger.WithLogger(ctx, c.Logger))
	if err != nil {
		return nil, fmt.Errorf("ingest document: %w", err)
	}
	return report, nil
}

// Close releases the database pool when there is one.
func (c *Core) Close() {
	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
	_ = c.Logger.Sync()
}
