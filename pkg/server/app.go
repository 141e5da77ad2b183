package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	"LiquiDash/internal/handler/web"
	"LiquiDash/internal/usecase"
	"LiquiDash/pkg/cache"
	pkgch "LiquiDash/pkg/clickhouse"
	"LiquiDash/pkg/config"
	xhttp "LiquiDash/pkg/http"
	applogger "LiquiDash/pkg/logger"
	"LiquiDash/pkg/session"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	l           *applogger.Logger
	fetcher     domrepo.Fetcher
	recordStore domrepo.RecordStore
	userStore   domrepo.UserStore
	audit       domrepo.AuditPublisher
	metrics     domrepo.Metrics
	cacheSvc    cache.Service
	sessions    *session.Manager
	chClient    *pkgch.Client
	httpServer  *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	fetcher domrepo.Fetcher,
	recordStore domrepo.RecordStore,
	userStore domrepo.UserStore,
	audit domrepo.AuditPublisher,
	metrics domrepo.Metrics,
	cacheSvc cache.Service,
	sessions *session.Manager,
	chClient *pkgch.Client,
) *App {
	return &App{
		cfg:         cfg,
		l:           l,
		fetcher:     fetcher,
		recordStore: recordStore,
		userStore:   userStore,
		audit:       audit,
		metrics:     metrics,
		cacheSvc:    cacheSvc,
		sessions:    sessions,
		chClient:    chClient,
	}
}

// Run loads the dataset, wires the handlers and blocks until a shutdown
// signal. The fetch happens exactly once, synchronously, before the
// server accepts traffic; a failed fetch serves an empty dashboard.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records := a.fetcher.Fetch(ctx)
	a.metrics.RecordFetch(len(records), len(records) > 0)
	snap := models.NewSnapshot(records)
	a.l.Info("dataset loaded", applogger.Int("rows", snap.Len()))

	// Durable audit copy; never read on the serving path, so a failure
	// here degrades the audit trail, not the dashboard.
	if err := a.recordStore.ReplaceAll(ctx, records); err != nil {
		a.l.Warn("record store replace failed", applogger.Error(err))
		a.metrics.RecordError("record_store")
	} else if err := a.audit.Publish(ctx, domrepo.AuditEvent{
		Kind: "dataset_replaced",
		Rows: len(records),
		OK:   len(records) > 0,
	}); err != nil {
		a.l.Warn("audit publish failed", applogger.Error(err))
	}

	auth := usecase.NewAuth(a.userStore, a.audit, a.metrics, a.l)
	dash := usecase.NewDashboard(snap, a.cacheSvc, a.cfg.Cache.TTL, a.metrics, a.l)
	handler := web.NewHandler(a.l, auth, dash, a.sessions)

	a.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
	)
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.cacheSvc != nil {
		if err := a.cacheSvc.Close(); err != nil {
			a.l.Warn("cache close error", applogger.Error(err))
		}
	}

	if err := a.audit.Close(); err != nil {
		a.l.Warn("audit close error", applogger.Error(err))
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.l.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.l.Info("shutdown complete")
	return nil
}
