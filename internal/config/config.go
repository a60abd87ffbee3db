// Package config handles configuration loading for nj-trades.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "NJTRADES"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	SEC      SECConfig      `mapstructure:"sec"      yaml:"sec"`
	Schedule ScheduleConfig `mapstructure:"schedule" yaml:"schedule"`
	Ingest   IngestConfig   `mapstructure:"ingest"   yaml:"ingest"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"  yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"          yaml:"host"`
	Port         int           `mapstructure:"port"          yaml:"port"`
	CORSOrigins  []string      `mapstructure:"cors_origins"  yaml:"cors_origins"`
	StaticDir    string        `mapstructure:"static_dir"    yaml:"static_dir"` // built dashboard, served with SPA fallback
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects and tunes the relational store.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         yaml:"driver"` // "sqlite" or "postgres"
	Path         string `mapstructure:"path"           yaml:"path"`   // sqlite file
	DSN          string `mapstructure:"dsn"            yaml:"dsn"`    // postgres connection string
	MaxOpenConns int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
}

// SECConfig holds EDGAR endpoints and client politeness settings.
type SECConfig struct {
	UserAgent      string        `mapstructure:"user_agent"       yaml:"user_agent"`
	DataURL        string        `mapstructure:"data_url"         yaml:"data_url"`
	ArchivesURL    string        `mapstructure:"archives_url"     yaml:"archives_url"`
	Form4FeedURL   string        `mapstructure:"form4_feed_url"   yaml:"form4_feed_url"`
	TickersURL     string        `mapstructure:"tickers_url"      yaml:"tickers_url"`
	RateLimit      int           `mapstructure:"rate_limit"       yaml:"rate_limit"` // requests per second
	Timeout        time.Duration `mapstructure:"timeout"          yaml:"timeout"`
	TickerCacheTTL time.Duration `mapstructure:"ticker_cache_ttl" yaml:"ticker_cache_ttl"`
}

// ScheduleConfig holds cron specs for each ingestion adapter.
type ScheduleConfig struct {
	Enabled      bool          `mapstructure:"enabled"       yaml:"enabled"`
	Insider      string        `mapstructure:"insider"       yaml:"insider"`
	Congress     string        `mapstructure:"congress"      yaml:"congress"`
	SEC13F       string        `mapstructure:"sec13f"        yaml:"sec13f"`
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
}

// IngestConfig tunes the adapters.
type IngestConfig struct {
	CongressRandomTrades int   `mapstructure:"congress_random_trades" yaml:"congress_random_trades"`
	CongressWindowDays   int   `mapstructure:"congress_window_days"   yaml:"congress_window_days"`
	CongressSeed         int64 `mapstructure:"congress_seed"          yaml:"congress_seed"` // 0 = time based
	SeedOnStart          bool  `mapstructure:"seed_on_start"          yaml:"seed_on_start"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.njtrades/config.yaml (home directory)
//  3. /etc/njtrades/config.yaml (system)
//
// Environment variables override config file values.
// Format: NJTRADES_<SECTION>_<KEY>, e.g., NJTRADES_SERVER_PORT
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".njtrades"))
	v.AddConfigPath("/etc/njtrades")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	overrideFromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.SEC.RateLimit <= 0 {
		return fmt.Errorf("sec.rate_limit must be positive")
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/nj-trades.db")
	v.SetDefault("database.max_open_conns", 10)

	// SEC EDGAR defaults (10 req/s fair access policy)
	v.SetDefault("sec.user_agent", "NJ Trades Bot (educational project)")
	v.SetDefault("sec.data_url", "https://data.sec.gov")
	v.SetDefault("sec.archives_url", "https://www.sec.gov/Archives/edgar/data")
	v.SetDefault("sec.form4_feed_url", "https://www.sec.gov/cgi-bin/browse-edgar?action=getcurrent&type=4&company=&dateb=&owner=only&count=100&output=atom")
	v.SetDefault("sec.tickers_url", "https://www.sec.gov/files/company_tickers.json")
	v.SetDefault("sec.rate_limit", 10)
	v.SetDefault("sec.timeout", 30*time.Second)
	v.SetDefault("sec.ticker_cache_ttl", 24*time.Hour)

	// Schedule defaults
	v.SetDefault("schedule.enabled", true)
	v.SetDefault("schedule.insider", "*/5 * * * *")
	v.SetDefault("schedule.congress", "0 * * * *")
	v.SetDefault("schedule.sec13f", "0 6 * * *")
	v.SetDefault("schedule.initial_delay", 2*time.Second)

	// Ingest defaults
	v.SetDefault("ingest.congress_random_trades", 250)
	v.SetDefault("ingest.congress_window_days", 180)
	v.SetDefault("ingest.congress_seed", 0)
	v.SetDefault("ingest.seed_on_start", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// overrideFromEnv reads keys that have no default (AutomaticEnv does not bind
// them on Unmarshal) and the unprefixed PORT / DATABASE_URL variables.
func overrideFromEnv(cfg *Config) {
	if dsn := os.Getenv(envPrefix + "_DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && cfg.Database.DSN == "" {
		cfg.Database.DSN = dsn
	}
	if ua := os.Getenv(envPrefix + "_SEC_USER_AGENT"); ua != "" {
		cfg.SEC.UserAgent = ua
	}
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			cfg.Server.Port = p
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
