package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-catalog-ingest/internal/adapter"
	"github.com/feral-file/ff-catalog-ingest/internal/config"
	"github.com/feral-file/ff-catalog-ingest/internal/crawler"
	"github.com/feral-file/ff-catalog-ingest/internal/crawler/feed"
	"github.com/feral-file/ff-catalog-ingest/internal/logger"
	"github.com/feral-file/ff-catalog-ingest/internal/metrics"
	"github.com/feral-file/ff-catalog-ingest/internal/notify"
	"github.com/feral-file/ff-catalog-ingest/internal/orchestrator"
	"github.com/feral-file/ff-catalog-ingest/internal/pricehistory"
	"github.com/feral-file/ff-catalog-ingest/internal/registry"
	"github.com/feral-file/ff-catalog-ingest/internal/resolver"
	"github.com/feral-file/ff-catalog-ingest/internal/scheduler"
	"github.com/feral-file/ff-catalog-ingest/internal/store"
	"github.com/feral-file/ff-catalog-ingest/internal/validation"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single ingest pass and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIngestConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ingest",
		Tags: map[string]string{
			"service": "ingest",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting catalog ingest", zap.Bool("once", *once))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()

	// Load provider registry
	var providerRegistry registry.ProviderRegistry
	if cfg.RegistryPath != "" {
		providerRegistry, err = registry.NewProviderRegistryLoader(fs, jsonAdapter).Load(cfg.RegistryPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load provider registry", zap.Error(err), zap.String("path", cfg.RegistryPath))
		}
	} else {
		providerRegistry, err = registry.LoadDefault(jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load embedded provider registry", zap.Error(err))
		}
	}
	logger.InfoCtx(ctx, "Loaded provider registry", zap.Strings("providers", providerRegistry.Providers()))

	// Price history
	location, err := pricehistory.LoadLocation(cfg.Price.Timezone)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load price timezone", zap.Error(err), zap.String("timezone", cfg.Price.Timezone))
	}
	recorder := pricehistory.NewRecorder(dataStore, clock, pricehistory.Config{
		ChunkSize: cfg.Price.ChunkSize,
		Location:  location,
	})

	validator := validation.NewValidator(providerRegistry)
	identityResolver := resolver.NewResolver(dataStore, providerRegistry, clock)

	// Crawlers
	crawlHTTP := adapter.NewHTTPClient(cfg.Crawl.HTTPTimeout)
	crawlers := make([]crawler.Crawler, 0, len(cfg.Crawl.Feeds))
	for _, f := range cfg.Crawl.Feeds {
		if _, ok := providerRegistry.Provider(f.Provider); !ok {
			logger.WarnCtx(ctx, "Feed provider is not in the registry; its ids fall back to provider-scoped form", zap.String("provider", f.Provider))
		}
		crawlers = append(crawlers, feed.NewCrawler(f.Provider, f.Source, fs, crawlHTTP, jsonAdapter))
	}
	if len(crawlers) == 0 {
		logger.WarnCtx(ctx, "No feeds configured; runs will be empty")
	}

	// Notification sinks
	var notifiers []notify.Notifier
	if cfg.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Secret, adapter.NewHTTPClient(cfg.Webhook.Timeout), jsonAdapter, clock))
		logger.InfoCtx(ctx, "Webhook notifier enabled", zap.String("url", cfg.Webhook.URL))
	}
	if cfg.NATS.URL != "" {
		nc, js, err := adapter.NewNatsJetStream().Connect(cfg.NATS.URL,
			nats.Name(cfg.NATS.ConnectionName),
			nats.MaxReconnects(cfg.NATS.MaxReconnects),
			nats.ReconnectWait(cfg.NATS.ReconnectWait),
		)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer nc.Close()
		notifiers = append(notifiers, notify.NewNATSNotifier(js, jsonAdapter, cfg.NATS.SubjectPrefix))
		logger.InfoCtx(ctx, "NATS notifier enabled", zap.String("url", nc.ConnectedUrl()), zap.String("subject_prefix", cfg.NATS.SubjectPrefix))
	}

	var dispatcher notify.Dispatcher
	if len(notifiers) > 0 {
		dispatcher = notify.NewDispatcher(notify.DispatcherConfig{
			Workers:         cfg.Notify.Workers,
			QueueSize:       cfg.Notify.QueueSize,
			DeliveryTimeout: cfg.Notify.DeliveryTimeout,
		}, notifiers...)
	}

	ingestMetrics := metrics.New("ingest")

	orch := orchestrator.NewOrchestrator(orchestrator.Config{
		RequestDelay:         cfg.Crawl.RequestDelay,
		ProviderTimeout:      cfg.Crawl.ProviderTimeout,
		FetchRetries:         cfg.Crawl.FetchRetries,
		RetryInitialInterval: cfg.Crawl.RetryInitialInterval,
		RetryMaxElapsed:      cfg.Crawl.RetryMaxElapsed,
		BatchPrices:          cfg.Crawl.BatchPrices,
	}, dataStore, validator, identityResolver, recorder, dispatcher, ingestMetrics, clock)

	ingestScheduler := scheduler.NewIngestScheduler(&scheduler.IngestSchedulerConfig{
		Interval:       cfg.Scheduler.Interval,
		MetricsPushURL: cfg.Metrics.PushgatewayURL,
		MetricsJob:     cfg.Metrics.Job,
	}, orch, crawlers, ingestMetrics, clock)

	defer func() {
		if dispatcher == nil {
			return
		}
		closeCtx, closeCancel := context.WithTimeout(context.Background(), cfg.Notify.DeliveryTimeout)
		defer closeCancel()
		if err := dispatcher.Close(closeCtx); err != nil {
			logger.WarnCtx(closeCtx, "Pending notifications were not delivered", zap.Error(err))
		}
	}()

	if *once {
		summary, err := ingestScheduler.RunOnce(ctx)
		if err != nil {
			logger.ErrorCtx(ctx, err)
			return
		}
		totals := summary.Totals()
		logger.InfoCtx(ctx, "Ingest run finished",
			zap.String("run_id", summary.RunID),
			zap.String("status", string(summary.Status)),
			zap.Int("fetched", totals.Fetched),
			zap.Int("accepted", totals.Accepted),
			zap.Int("rejected", totals.Rejected),
			zap.Int("new_products", totals.NewProducts),
		)
		return
	}

	// Start the scheduler in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := ingestScheduler.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the scheduler
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := ingestScheduler.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Catalog ingest stopped")
}
