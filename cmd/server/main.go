package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"the-daily/agent"
	"the-daily/api/router"
	"the-daily/config"
	"the-daily/embedding"
	"the-daily/internal/logger"
	"the-daily/models"
	"the-daily/storage"
	"the-daily/vectorindex"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Log.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("failed to build answer engine: %v", err)
		os.Exit(1)
	}
	if engine == nil {
		logger.Log.Warnf("no index at %s; serving without chat until a pipeline run publishes one", cfg.IndexPath())
	}

	r := router.New(cfg, engine)
	handler := cors.Default().Handler(r)

	logger.Log.Infof("server listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

// buildEngine loads the published index/metadata pair and wires the query
// path. A missing index is not an error: the server starts and the chat
// endpoint degrades until the pipeline publishes an edition.
func buildEngine(ctx context.Context, cfg *config.AppConfig) (*agent.Engine, error) {
	ix, err := vectorindex.Load(cfg.IndexPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metadata []models.PostMetadata
	if err := storage.ReadJSON(cfg.MetadataPath(), &metadata); err != nil {
		return nil, err
	}

	embedder, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	generator, err := agent.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.Enrichment.GeminiModel)
	if err != nil {
		return nil, err
	}

	retriever := agent.NewRetriever(embedder, ix, metadata, cfg.Retrieval.TopK)
	responder := agent.NewResponder(generator)
	logger.Log.Infof("loaded index with %d stories", len(metadata))
	return agent.NewEngine(retriever, responder), nil
}
