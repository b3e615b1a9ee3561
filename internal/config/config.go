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
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration for run notifications.
// An empty URL disables the NATS notifier.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// WebhookConfig holds the outbound run webhook. An empty URL disables it.
type WebhookConfig struct {
	URL     string        `mapstructure:"url"`
	Secret  string        `mapstructure:"secret"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NotifyConfig holds the notification dispatcher pool
type NotifyConfig struct {
	Workers         int           `mapstructure:"workers"`
	QueueSize       int           `mapstructure:"queue_size"`
	DeliveryTimeout time.Duration `mapstructure:"delivery_timeout"`
}

// MetricsConfig holds Prometheus Pushgateway settings. An empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// PriceConfig holds price history settings
type PriceConfig struct {
	Timezone  string `mapstructure:"timezone"`
	ChunkSize int    `mapstructure:"chunk_size"`
}

// FeedConfig binds a provider name to the extraction feed its crawler reads
type FeedConfig struct {
	Provider string `mapstructure:"provider"`
	Source   string `mapstructure:"source"`
}

// CrawlConfig holds per-provider crawl pacing and retry settings
type CrawlConfig struct {
	RequestDelay         time.Duration `mapstructure:"request_delay"`
	ProviderTimeout      time.Duration `mapstructure:"provider_timeout"`
	FetchRetries         uint64        `mapstructure:"fetch_retries"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
	RetryMaxElapsed      time.Duration `mapstructure:"retry_max_elapsed"`
	HTTPTimeout          time.Duration `mapstructure:"http_timeout"`
	BatchPrices          bool          `mapstructure:"batch_prices"`
	Feeds                []FeedConfig  `mapstructure:"feeds"`
}

// SchedulerConfig holds the run loop settings
type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// IngestConfig holds configuration for the catalog ingest program
type IngestConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig  `mapstructure:"database"`
	NATS         NATSConfig      `mapstructure:"nats"`
	Webhook      WebhookConfig   `mapstructure:"webhook"`
	Notify       NotifyConfig    `mapstructure:"notify"`
	Metrics      MetricsConfig   `mapstructure:"metrics"`
	Price        PriceConfig     `mapstructure:"price"`
	Crawl        CrawlConfig     `mapstructure:"crawl"`
	Scheduler    SchedulerConfig `mapstructure:"scheduler"`
	RegistryPath string          `mapstructure:"registry_path"`
}

// LoadIngestConfig loads configuration for the ingest program
func LoadIngestConfig(configFile string, envPath string) (*IngestConfig, error) {
	v := configureViper("ingest", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.subject_prefix", "ingest.runs")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-catalog-ingest")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("notify.workers", 4)
	v.SetDefault("notify.queue_size", 64)
	v.SetDefault("notify.delivery_timeout", "30s")
	v.SetDefault("metrics.job", "catalog_ingest")
	v.SetDefault("price.timezone", "Asia/Tokyo")
	v.SetDefault("price.chunk_size", 100)
	v.SetDefault("crawl.request_delay", "1s")
	v.SetDefault("crawl.provider_timeout", "30m")
	v.SetDefault("crawl.fetch_retries", 3)
	v.SetDefault("crawl.retry_initial_interval", "2s")
	v.SetDefault("crawl.retry_max_elapsed", "2m")
	v.SetDefault("crawl.http_timeout", "30s")
	v.SetDefault("scheduler.interval", "6h")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
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
	if cfg.Webhook.URL != "" && cfg.Webhook.Secret == "" {
		return nil, errors.New("webhook.secret is required when webhook.url is set")
	}
	if cfg.Price.ChunkSize <= 0 {
		return nil, errors.New("price.chunk_size must be positive")
	}
	for i, feed := range cfg.Crawl.Feeds {
		if strings.TrimSpace(feed.Provider) == "" {
			return nil, fmt.Errorf("crawl.feeds[%d].provider is required", i)
		}
		if strings.TrimSpace(feed.Source) == "" {
			return nil, fmt.Errorf("crawl.feeds[%d].source is required", i)
		}
	}

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
		// 2. Service-specific directory (e.g., cmd/ingest/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"registry_path",
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
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Webhook
		"webhook.url",
		"webhook.secret",
		"webhook.timeout",
		// Notify
		"notify.workers",
		"notify.queue_size",
		"notify.delivery_timeout",
		// Metrics
		"metrics.pushgateway_url",
		"metrics.job",
		// Price
		"price.timezone",
		"price.chunk_size",
		// Crawl
		"crawl.request_delay",
		"crawl.provider_timeout",
		"crawl.fetch_retries",
		"crawl.retry_initial_interval",
		"crawl.retry_max_elapsed",
		"crawl.http_timeout",
		"crawl.batch_prices",
		// Scheduler
		"scheduler.interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
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

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
