//go:build wireinject
// +build wireinject

package di

import (
	"LiquiDash/pkg/config"
	"LiquiDash/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideCache,
		ProvideAuditPublisher,

		// Repositories
		ProvideRecordStore,
		ProvideUserStore,
		ProvideFetcher,

		// Sessions
		ProvideSessionManager,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
