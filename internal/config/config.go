package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"NavyNewsWatch/internal/catalog"
)

const (
	configPathEnv  = "NAVY_NEWS_CONFIG"
	databaseDSNEnv = "DATABASE_DSN"
	serpAPIKeyEnv  = "SERPAPI_API_KEY"
	listenAddrEnv  = "NAVY_NEWS_LISTEN_ADDR"
	logLevelEnv    = "NAVY_NEWS_LOG_LEVEL"
)

// Startup validation errors. Missing external settings are fatal.
var (
	ErrMissingDatabaseDSN = errors.New("database dsn is required (database.dsn or DATABASE_DSN)")
	ErrMissingAPIKey      = errors.New("search API key is required (serpapi.apiKey or SERPAPI_API_KEY)")
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Logging   LoggingConfig    `yaml:"logging"`
	Database  DatabaseConfig   `yaml:"database"`
	SerpAPI   SerpAPIConfig    `yaml:"serpapi"`
	Pipeline  PipelineConfig   `yaml:"pipeline"`
	Scheduler SchedulerConfig  `yaml:"scheduler"`
	Catalog   []LanguageConfig `yaml:"catalog"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ShutdownTimeoutMs int    `yaml:"shutdownTimeoutMs"`
}

// ShutdownTimeout resolves the graceful-shutdown budget.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutMs) * time.Millisecond
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SerpAPIConfig wires the external news search API.
type SerpAPIConfig struct {
	APIKey       string `yaml:"apiKey"`
	Endpoint     string `yaml:"endpoint"`
	Engine       string `yaml:"engine"`
	SearchDomain string `yaml:"searchDomain"`
	Country      string `yaml:"country"`
	Recency      string `yaml:"recency"`
	ResultLimit  int    `yaml:"resultLimit"`
}

// PipelineConfig tunes the ingestion run.
type PipelineConfig struct {
	PauseMs int `yaml:"pauseMs"`
}

// Pause resolves the inter-request spacing; defaults to one second.
func (p PipelineConfig) Pause() time.Duration {
	if p.PauseMs <= 0 {
		return time.Second
	}
	return time.Duration(p.PauseMs) * time.Millisecond
}

// SchedulerConfig enables optional recurring ingestion runs. Zero disables
// the scheduler; runs then happen only via the trigger endpoint.
type SchedulerConfig struct {
	IntervalMinutes int `yaml:"intervalMinutes"`
}

// Interval resolves the recurrence period.
func (s SchedulerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// LanguageConfig holds one language group of the keyword catalog.
type LanguageConfig struct {
	Language string   `yaml:"language"`
	Locale   string   `yaml:"locale"`
	Keywords []string `yaml:"keywords"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate reports the fatal startup conditions.
func (c Config) Validate() error {
	if c.Database.DSN == "" {
		return ErrMissingDatabaseDSN
	}
	if c.SerpAPI.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// CatalogGroups converts configured language groups for the catalog.
func (c Config) CatalogGroups() []catalog.Group {
	groups := make([]catalog.Group, 0, len(c.Catalog))
	for _, lang := range c.Catalog {
		groups = append(groups, catalog.Group{
			Language: lang.Language,
			Locale:   lang.Locale,
			Keywords: lang.Keywords,
		})
	}
	return groups
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(serpAPIKeyEnv); v != "" {
		c.SerpAPI.APIKey = v
	}

	if v := os.Getenv(listenAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeoutMs > 0 {
		base.Server.ShutdownTimeoutMs = override.Server.ShutdownTimeoutMs
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.SerpAPI.APIKey != "" {
		base.SerpAPI.APIKey = override.SerpAPI.APIKey
	}
	if override.SerpAPI.Endpoint != "" {
		base.SerpAPI.Endpoint = override.SerpAPI.Endpoint
	}
	if override.SerpAPI.Engine != "" {
		base.SerpAPI.Engine = override.SerpAPI.Engine
	}
	if override.SerpAPI.SearchDomain != "" {
		base.SerpAPI.SearchDomain = override.SerpAPI.SearchDomain
	}
	if override.SerpAPI.Country != "" {
		base.SerpAPI.Country = override.SerpAPI.Country
	}
	if override.SerpAPI.Recency != "" {
		base.SerpAPI.Recency = override.SerpAPI.Recency
	}
	if override.SerpAPI.ResultLimit > 0 {
		base.SerpAPI.ResultLimit = override.SerpAPI.ResultLimit
	}

	if override.Pipeline.PauseMs > 0 {
		base.Pipeline.PauseMs = override.Pipeline.PauseMs
	}

	if override.Scheduler.IntervalMinutes > 0 {
		base.Scheduler.IntervalMinutes = override.Scheduler.IntervalMinutes
	}

	if len(override.Catalog) > 0 {
		base.Catalog = override.Catalog
	}

	return base
}

func defaultConfig() Config {
	groups := catalog.Default()
	langs := make([]LanguageConfig, 0, len(groups))
	for _, g := range groups {
		langs = append(langs, LanguageConfig{Language: g.Language, Locale: g.Locale, Keywords: g.Keywords})
	}

	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{DSN: ""},
		SerpAPI: SerpAPIConfig{
			Endpoint:     "https://serpapi.com/search.json",
			Engine:       "google",
			SearchDomain: "google.com",
			Country:      "ma",
			Recency:      "qdr:d",
			ResultLimit:  100,
		},
		Pipeline: PipelineConfig{PauseMs: 1000},
		Catalog:  langs,
	}
}
