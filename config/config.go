package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig    `yaml:"logging"`
	DataDir    string           `yaml:"data_dir"`
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Cleaning   CleaningConfig   `yaml:"cleaning"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Insights   InsightsConfig   `yaml:"insights"`
	Server     ServerConfig     `yaml:"server"`
	Schedule   ScheduleConfig   `yaml:"schedule"`

	// GeminiAPIKey is read from the GEMINI_API_KEY environment variable,
	// never from the yaml file.
	GeminiAPIKey string `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HackerNewsConfig configures the Algolia HN API client and the collector.
type HackerNewsConfig struct {
	BaseURL            string   `yaml:"base_url"`
	ItemURLFormat      string   `yaml:"item_url_format"`
	FrontPageHits      int      `yaml:"front_page_hits"`
	SearchHitsPerQuery int      `yaml:"search_hits_per_query"`
	TopComments        int      `yaml:"top_comments"`
	TopicQueries       []string `yaml:"topic_queries"`
}

type CleaningConfig struct {
	MinScore int `yaml:"min_score"`
}

// EnrichmentConfig configures summarization and topic classification.
// TopicKeywords maps a topic label to the lowercase keywords that select it.
type EnrichmentConfig struct {
	Workers       int                 `yaml:"workers"`
	GeminiModel   string              `yaml:"gemini_model"`
	TopicKeywords map[string][]string `yaml:"topic_keywords"`
}

// EmbeddingConfig configures the OpenAI-compatible embeddings endpoint.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	Dimension   int    `yaml:"dimension"`
	BatchSize   int    `yaml:"batch_size"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

type InsightsConfig struct {
	BreakthroughScore int `yaml:"breakthrough_score"`
	HotCommentFloor   int `yaml:"hot_comment_floor"`
	TopN              int `yaml:"top_n"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ScheduleConfig holds the cron spec for the daily batch cycle.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// Load reads .env and config.yaml from the project base path and returns the
// resolved configuration. Callers inject the returned value; there is no
// process-wide config singleton.
func Load() (*AppConfig, error) {
	base := GetBasePath()
	godotenv.Load(filepath.Join(base, ENV_FILE))

	data, err := os.ReadFile(filepath.Join(base, CONFIG_FILE))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
	}
	applyDefaults(&c)

	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if c.DataDir == "" {
		c.DataDir = filepath.Join(base, "data")
	}
	return &c, nil
}

func applyDefaults(c *AppConfig) {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.HackerNews.BaseURL == "" {
		c.HackerNews.BaseURL = "https://hn.algolia.com/api/v1"
	}
	if c.HackerNews.ItemURLFormat == "" {
		c.HackerNews.ItemURLFormat = "https://news.ycombinator.com/item?id=%s"
	}
	if c.HackerNews.FrontPageHits == 0 {
		c.HackerNews.FrontPageHits = 200
	}
	if c.HackerNews.SearchHitsPerQuery == 0 {
		c.HackerNews.SearchHitsPerQuery = 50
	}
	if c.HackerNews.TopComments == 0 {
		c.HackerNews.TopComments = 5
	}
	if len(c.HackerNews.TopicQueries) == 0 {
		c.HackerNews.TopicQueries = []string{
			"machine learning",
			"artificial intelligence",
			"programming language",
			"open source",
			"startup",
		}
	}
	if c.Cleaning.MinScore == 0 {
		c.Cleaning.MinScore = 10
	}
	if c.Enrichment.Workers == 0 {
		c.Enrichment.Workers = 4
	}
	if c.Enrichment.GeminiModel == "" {
		c.Enrichment.GeminiModel = "gemini-2.0-flash"
	}
	if len(c.Enrichment.TopicKeywords) == 0 {
		c.Enrichment.TopicKeywords = DefaultTopicKeywords()
	}
	if c.Embedding.BaseURL == "" {
		c.Embedding.BaseURL = "https://api.openai.com/v1"
	}
	if c.Embedding.APIKeyEnv == "" {
		c.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimension == 0 {
		c.Embedding.Dimension = 1536
	}
	if c.Embedding.BatchSize == 0 {
		c.Embedding.BatchSize = 100
	}
	if c.Embedding.TimeoutSecs == 0 {
		c.Embedding.TimeoutSecs = 30
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = 8
	}
	if c.Insights.BreakthroughScore == 0 {
		c.Insights.BreakthroughScore = 300
	}
	if c.Insights.HotCommentFloor == 0 {
		c.Insights.HotCommentFloor = 20
	}
	if c.Insights.TopN == 0 {
		c.Insights.TopN = 10
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "0 6 * * *"
	}
}

// DefaultTopicKeywords is the built-in topic → keyword table used when the
// yaml file does not override it. Matching is case-insensitive substring.
func DefaultTopicKeywords() map[string][]string {
	return map[string][]string{
		"AI/ML":                 {"ai", "machine learning", "deep learning", "neural", "llm", "gpt", "transformer", "diffusion", "generative"},
		"Web Development":       {"javascript", "react", "vue", "angular", "frontend", "backend", "web", "css", "html", "node"},
		"Cloud/Infra":           {"aws", "cloud", "docker", "kubernetes", "devops", "terraform", "ci/cd", "infrastructure"},
		"Security":              {"security", "vulnerability", "exploit", "encryption", "privacy", "hack", "breach", "zero-day"},
		"Programming Languages": {"rust", "python", "golang", "java", "typescript", "compiler", "language"},
		"Data/Analytics":        {"data", "analytics", "database", "sql", "spark", "pipeline", "etl", "warehouse"},
		"Open Source":           {"open source", "oss", "github", "repository", "fork", "release", "license"},
		"Hardware/Chips":        {"chip", "gpu", "cpu", "hardware", "semiconductor", "nvidia", "amd", "intel", "quantum"},
		"Startups":              {"startup", "funding", "yc", "seed", "series a", "acquisition", "ipo", "valuation"},
	}
}

// Derived artifact paths. Everything under DataDir is replaced wholesale per
// batch cycle, never mutated in place.

func (c *AppConfig) RawDir() string       { return filepath.Join(c.DataDir, "raw") }
func (c *AppConfig) ProcessedDir() string { return filepath.Join(c.DataDir, "processed") }

func (c *AppConfig) IndexPath() string    { return filepath.Join(c.ProcessedDir(), "vectors.index") }
func (c *AppConfig) MetadataPath() string { return filepath.Join(c.ProcessedDir(), "summaries.json") }
func (c *AppConfig) DigestPath() string   { return filepath.Join(c.ProcessedDir(), "daily_digest.json") }
func (c *AppConfig) ChartsPath() string   { return filepath.Join(c.ProcessedDir(), "charts_data.json") }

// GetBasePath walks up from the working directory until it finds the
// directory containing config.yaml.
func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
