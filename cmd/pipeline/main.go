package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"the-daily/collector"
	"the-daily/config"
	"the-daily/embedding"
	"the-daily/enricher"
	"the-daily/hackernews"
	"the-daily/internal/logger"
	"the-daily/pipeline"
)

func main() {
	once := flag.Bool("once", false, "run one batch cycle and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Log.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner, err := buildRunner(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("failed to build pipeline: %v", err)
		os.Exit(1)
	}

	if *once {
		if err := runner.Run(ctx); err != nil {
			logger.Log.Errorf("pipeline run failed: %v", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule.Cron, func() {
		if err := runner.Run(ctx); err != nil {
			logger.Log.Errorf("scheduled pipeline run failed: %v", err)
		}
	})
	if err != nil {
		logger.Log.Errorf("invalid cron spec %q: %v", cfg.Schedule.Cron, err)
		os.Exit(1)
	}
	c.Start()
	logger.Log.Infof("pipeline scheduled with cron spec %q", cfg.Schedule.Cron)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Log.Info("shutting down...")
	cancel()
	<-c.Stop().Done()
}

// buildRunner wires the batch cycle's collaborators from config.
func buildRunner(ctx context.Context, cfg *config.AppConfig) (*pipeline.Runner, error) {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	hn := hackernews.NewClient(httpClient, cfg.HackerNews.BaseURL)
	coll := collector.New(hn, cfg.HackerNews, cfg.RawDir())

	summarizer, err := enricher.NewGeminiSummarizer(ctx, cfg.GeminiAPIKey, cfg.Enrichment.GeminiModel)
	if err != nil {
		return nil, err
	}
	embedder, err := embedding.NewClient(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	classifier := enricher.NewClassifier(cfg.Enrichment.TopicKeywords)
	enr := enricher.New(summarizer, embedder, classifier, cfg.Enrichment.Workers)

	return pipeline.NewRunner(cfg, coll, enr), nil
}
