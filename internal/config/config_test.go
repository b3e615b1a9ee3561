package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIngestConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		wantErr     bool
		errContains string
		validate    func(t *testing.T, cfg *IngestConfig)
	}{
		{
			name: "valid config",
			configYAML: `
debug: true
sentry_dsn: https://key@sentry.example.com/1
registry_path: config/providers.json
database:
  host: localhost
  port: 5433
  user: ingest
  password: secret
  dbname: catalog
  sslmode: require
nats:
  url: nats://localhost:4222
  subject_prefix: catalog.runs
webhook:
  url: https://hooks.example.com/ingest
  secret: s3cret
  timeout: 5s
metrics:
  pushgateway_url: http://pushgateway:9091
  job: nightly_ingest
price:
  timezone: UTC
  chunk_size: 50
crawl:
  request_delay: 250ms
  provider_timeout: 10m
  fetch_retries: 5
  batch_prices: true
  feeds:
    - provider: fanza
      source: /data/fanza.json
    - provider: mgs
      source: https://feeds.example.com/mgs.json
scheduler:
  interval: 1h
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *IngestConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://key@sentry.example.com/1", cfg.SentryDSN)
				assert.Equal(t, "config/providers.json", cfg.RegistryPath)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "catalog", cfg.Database.DBName)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "catalog.runs", cfg.NATS.SubjectPrefix)
				assert.Equal(t, "https://hooks.example.com/ingest", cfg.Webhook.URL)
				assert.Equal(t, 5*time.Second, cfg.Webhook.Timeout)
				assert.Equal(t, "http://pushgateway:9091", cfg.Metrics.PushgatewayURL)
				assert.Equal(t, "nightly_ingest", cfg.Metrics.Job)
				assert.Equal(t, "UTC", cfg.Price.Timezone)
				assert.Equal(t, 50, cfg.Price.ChunkSize)
				assert.Equal(t, 250*time.Millisecond, cfg.Crawl.RequestDelay)
				assert.Equal(t, 10*time.Minute, cfg.Crawl.ProviderTimeout)
				assert.Equal(t, uint64(5), cfg.Crawl.FetchRetries)
				assert.True(t, cfg.Crawl.BatchPrices)
				require.Len(t, cfg.Crawl.Feeds, 2)
				assert.Equal(t, FeedConfig{Provider: "fanza", Source: "/data/fanza.json"}, cfg.Crawl.Feeds[0])
				assert.Equal(t, FeedConfig{Provider: "mgs", Source: "https://feeds.example.com/mgs.json"}, cfg.Crawl.Feeds[1])
				assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
			},
		},
		{
			name: "defaults applied",
			configYAML: `
database:
  host: localhost
  dbname: catalog
`,
			wantErr: false,
			validate: func(t *testing.T, cfg *IngestConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 10, cfg.Database.MaxOpenConns)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "ingest.runs", cfg.NATS.SubjectPrefix)
				assert.Empty(t, cfg.NATS.URL)
				assert.Empty(t, cfg.Webhook.URL)
				assert.Equal(t, 4, cfg.Notify.Workers)
				assert.Equal(t, 64, cfg.Notify.QueueSize)
				assert.Equal(t, 30*time.Second, cfg.Notify.DeliveryTimeout)
				assert.Equal(t, "catalog_ingest", cfg.Metrics.Job)
				assert.Equal(t, "Asia/Tokyo", cfg.Price.Timezone)
				assert.Equal(t, 100, cfg.Price.ChunkSize)
				assert.Equal(t, time.Second, cfg.Crawl.RequestDelay)
				assert.Equal(t, 30*time.Minute, cfg.Crawl.ProviderTimeout)
				assert.Equal(t, uint64(3), cfg.Crawl.FetchRetries)
				assert.Equal(t, 2*time.Second, cfg.Crawl.RetryInitialInterval)
				assert.Equal(t, 2*time.Minute, cfg.Crawl.RetryMaxElapsed)
				assert.False(t, cfg.Crawl.BatchPrices)
				assert.Empty(t, cfg.Crawl.Feeds)
				assert.Equal(t, 6*time.Hour, cfg.Scheduler.Interval)
			},
		},
		{
			name: "missing database host",
			configYAML: `
database:
  dbname: catalog
`,
			wantErr:     true,
			errContains: "database.host is required",
		},
		{
			name: "missing database name",
			configYAML: `
database:
  host: localhost
`,
			wantErr:     true,
			errContains: "database.dbname is required",
		},
		{
			name: "webhook without secret",
			configYAML: `
database:
  host: localhost
  dbname: catalog
webhook:
  url: https://hooks.example.com/ingest
`,
			wantErr:     true,
			errContains: "webhook.secret is required",
		},
		{
			name: "non-positive chunk size",
			configYAML: `
database:
  host: localhost
  dbname: catalog
price:
  chunk_size: 0
`,
			wantErr:     true,
			errContains: "price.chunk_size must be positive",
		},
		{
			name: "feed without source",
			configYAML: `
database:
  host: localhost
  dbname: catalog
crawl:
  feeds:
    - provider: fanza
`,
			wantErr:     true,
			errContains: "crawl.feeds[0].source is required",
		},
		{
			name:       "invalid yaml",
			configYAML: "database:\n  host: [unterminated\n",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.configYAML), 0600))

			cfg, err := LoadIngestConfig(configPath, tmpDir)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadIngestConfig_MissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadIngestConfig(filepath.Join(tmpDir, "missing.yaml"), tmpDir)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "db.internal",
				Port:     6543,
				User:     "ingest",
				Password: "p@ssw0rd!",
				DBName:   "catalog",
				SSLMode:  "disable",
			},
			expected: "host=db.internal port=6543 user=ingest password=p@ssw0rd! dbname=catalog sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	// godotenv.Overload writes to the process environment; registering the keys
	// with t.Setenv restores them once the test ends.
	for _, key := range []string{
		"FF_INGEST_DEBUG",
		"FF_INGEST_DATABASE_HOST",
		"FF_INGEST_DATABASE_PORT",
		"FF_INGEST_PRICE_TIMEZONE",
		"FF_INGEST_CRAWL_BATCH_PRICES",
		"FF_INGEST_WEBHOOK_URL",
		"FF_INGEST_WEBHOOK_SECRET",
	} {
		t.Setenv(key, "")
	}

	tmpDir := t.TempDir()
	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	envContent := `FF_INGEST_DEBUG=true
FF_INGEST_DATABASE_HOST=env-host
FF_INGEST_DATABASE_PORT=6432
FF_INGEST_PRICE_TIMEZONE=UTC
FF_INGEST_WEBHOOK_URL=https://hooks.example.com/env
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// Service-specific local file wins over the shared one
	localContent := `FF_INGEST_CRAWL_BATCH_PRICES=true
FF_INGEST_WEBHOOK_SECRET=from-local
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.ingest.local"), []byte(localContent), 0600))

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  dbname: catalog
price:
  timezone: Asia/Tokyo
crawl:
  batch_prices: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configFile), 0600))

	cfg, err := LoadIngestConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "catalog", cfg.Database.DBName)
	assert.Equal(t, "UTC", cfg.Price.Timezone)
	assert.True(t, cfg.Crawl.BatchPrices)
	assert.Equal(t, "https://hooks.example.com/env", cfg.Webhook.URL)
	assert.Equal(t, "from-local", cfg.Webhook.Secret)
}
