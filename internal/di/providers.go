package di

import (
	"context"
	"fmt"
	"time"

	"LiquiDash/internal/domain/repository"
	internalrepo "LiquiDash/internal/repository"
	"LiquiDash/internal/service/hkma"
	"LiquiDash/pkg/cache"
	pkgch "LiquiDash/pkg/clickhouse"
	"LiquiDash/pkg/config"
	pkgkafka "LiquiDash/pkg/kafka"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/metrics"
	"LiquiDash/pkg/server"
	"LiquiDash/pkg/session"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lcfg := &applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lcfg.Level == "" {
		lcfg.Level = "info"
	}
	if lcfg.Format == "" {
		lcfg.Format = "console"
	}
	if lcfg.Output == "" {
		lcfg.Output = "stdout"
	}
	return applogger.New(lcfg)
}

// ProvideClickHouseClient creates a ClickHouse client and bootstraps the
// schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	db := cfg.ClickHouse.Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.liquidity (end_of_date Date, opening_balance Float64, closing_balance Float64, forecast_aggregate_bal_t1 Float64, forecast_aggregate_bal_t2 Float64, forecast_aggregate_bal_t3 Float64, forecast_aggregate_bal_t4 Float64, forecast_aggregate_bal_u Float64, fetched_at DateTime) ENGINE=MergeTree ORDER BY end_of_date", db),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.users (username String, password_hash String, created_at DateTime) ENGINE=MergeTree ORDER BY username", db),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideRecordStore creates the liquidity audit store.
func ProvideRecordStore(ch *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.RecordStore {
	store := internalrepo.NewCHRecordStore(ch.DB(), cfg.ClickHouse.Database+".liquidity")
	store.SetLogger(l)
	return store
}

// ProvideUserStore creates the account store.
func ProvideUserStore(ch *pkgch.Client, cfg *config.Config) repository.UserStore {
	return internalrepo.NewCHUserStore(ch.DB(), cfg.ClickHouse.Database+".users")
}

// ProvideFetcher creates the HKMA data fetcher.
func ProvideFetcher(cfg *config.Config, l *applogger.Logger) repository.Fetcher {
	return hkma.New(cfg.HKMA.URL, cfg.HKMA.Timeout, l)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the render-result cache: layered memory+Redis
// when Redis is configured, in-process memory otherwise, nil when
// caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvideAuditPublisher creates the Kafka audit publisher, or a no-op
// when auditing is disabled.
func ProvideAuditPublisher(cfg *config.Config) (repository.AuditPublisher, error) {
	if !cfg.Audit.Enabled {
		return internalrepo.NoopAuditPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Brokers),
		pkgkafka.WithCompression(cfg.Audit.Compression),
		pkgkafka.WithRequiredAcks(cfg.Audit.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Audit.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Audit.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Audit.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Audit.Producer.WriteTimeout, cfg.Audit.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Audit.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Audit.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Audit.Topic), nil
}

// ProvideSessionManager creates the session cookie manager.
func ProvideSessionManager(cfg *config.Config) (*session.Manager, error) {
	return session.NewManager(cfg.Session.CookieName, cfg.Session.Secret, cfg.Session.TTL)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	fetcher repository.Fetcher,
	recordStore repository.RecordStore,
	userStore repository.UserStore,
	audit repository.AuditPublisher,
	m repository.Metrics,
	cacheSvc cache.Service,
	sessions *session.Manager,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, l, fetcher, recordStore, userStore, audit, m, cacheSvc, sessions, chClient)
}
