package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/artcadia/market-sync/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the postgres connection string for this configuration
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// MarketConfig holds marketplace API configuration
type MarketConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	APIKey      string        `mapstructure:"api_key"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

// CoinsConfig holds coin-data API configuration
type CoinsConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	APIKey      string        `mapstructure:"api_key"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	ChunkSize   int           `mapstructure:"chunk_size"`
	ChunkDelay  time.Duration `mapstructure:"chunk_delay"`
}

// EnricherConfig holds worker pool sizes for the order enrichment passes
type EnricherConfig struct {
	SettlementWorkers int `mapstructure:"settlement_workers"`
	BuyerWorkers      int `mapstructure:"buyer_workers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// IngestConfig holds configuration for the ingestd binary
type IngestConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Market     MarketConfig   `mapstructure:"market"`
	Coins      CoinsConfig    `mapstructure:"coins"`
	Enricher   EnricherConfig `mapstructure:"enricher"`

	// Collections are the collection contract addresses to sweep
	Collections []string `mapstructure:"collections"`
	// CoinIDs are the provider coin ids whose daily prices are tracked
	CoinIDs []string `mapstructure:"coin_ids"`
	// DisabledKinds lists record kinds excluded from the sweep
	DisabledKinds []string `mapstructure:"disabled_kinds"`
	// PublishEvents toggles NATS publication of persisted pages
	PublishEvents bool `mapstructure:"publish_events"`
}

// EnabledKinds derives the per-kind toggle map from DisabledKinds.
// An empty DisabledKinds list enables everything.
func (c *IngestConfig) EnabledKinds() (map[domain.RecordKind]bool, error) {
	enabled := make(map[domain.RecordKind]bool, len(domain.Kinds))
	for _, kind := range domain.Kinds {
		enabled[kind] = true
	}
	for _, raw := range c.DisabledKinds {
		kind := domain.RecordKind(raw)
		if !domain.IsValidKind(kind) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, raw)
		}
		enabled[kind] = false
	}
	return enabled, nil
}

// APIConfig holds configuration for the status API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`

	Collections []string `mapstructure:"collections"`
	CoinIDs     []string `mapstructure:"coin_ids"`
}

// LoadIngestConfig loads configuration for the ingestd binary
func LoadIngestConfig(configFile string, envPath string) (*IngestConfig, error) {
	v := configureViper("ingestd", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MARKET_EVENTS")
	v.SetDefault("nats.connection_name", "market-sync-ingestd")
	v.SetDefault("market.api_url", "https://api.x.immutable.com")
	v.SetDefault("market.http_timeout", "30s")
	v.SetDefault("coins.api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coins.http_timeout", "30s")
	v.SetDefault("coins.chunk_size", 5)
	v.SetDefault("coins.chunk_delay", "65s")
	v.SetDefault("enricher.settlement_workers", 45)
	v.SetDefault("enricher.buyer_workers", 3)
	v.SetDefault("publish_events", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg IngestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if len(cfg.Collections) == 0 && len(cfg.CoinIDs) == 0 {
		return nil, errors.New("at least one of collections or coin_ids is required")
	}
	if _, err := cfg.EnabledKinds(); err != nil {
		return nil, err
	}

	normalized := make([]string, 0, len(cfg.Collections))
	for _, collection := range cfg.Collections {
		addr, err := domain.NormalizeAddress(collection)
		if err != nil {
			return nil, fmt.Errorf("invalid collection address: %w", err)
		}
		normalized = append(normalized, addr)
	}
	cfg.Collections = normalized

	return &cfg, nil
}

// LoadAPIConfig loads configuration for the status API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	normalized := make([]string, 0, len(cfg.Collections))
	for _, collection := range cfg.Collections {
		addr, err := domain.NormalizeAddress(collection)
		if err != nil {
			return nil, fmt.Errorf("invalid collection address: %w", err)
		}
		normalized = append(normalized, addr)
	}
	cfg.Collections = normalized

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/ingestd/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("MARKET_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when
// no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Marketplace API
		"market.api_url",
		"market.api_key",
		"market.http_timeout",
		// Coin-data API
		"coins.api_url",
		"coins.api_key",
		"coins.http_timeout",
		"coins.chunk_size",
		"coins.chunk_delay",
		// Enricher
		"enricher.settlement_workers",
		"enricher.buyer_workers",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.api_keys",
		// Streams
		"collections",
		"coin_ids",
		"disabled_kinds",
		"publish_events",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads .env files for local development
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
