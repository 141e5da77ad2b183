package repository

import (
	"context"

	"LiquiDash/internal/domain/models"
)

// Fetcher retrieves the remote dataset. Implementations return an empty
// slice on failure; callers treat "no data" and "fetch failed" the same.
type Fetcher interface {
	Fetch(ctx context.Context) []models.LiquidityRecord
}

// RecordStore is the durable audit copy of the fetched dataset. It is
// written once per startup and never read on the serving path.
type RecordStore interface {
	ReplaceAll(ctx context.Context, records []models.LiquidityRecord) error
	Health(ctx context.Context) error
}

// UserStore persists registered accounts.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.UserAccount, error)
	Insert(ctx context.Context, user models.UserAccount) error
}

// AuditPublisher emits operational audit events (dataset replacement,
// registrations, logins). Implementations may be no-ops when disabled.
type AuditPublisher interface {
	Publish(ctx context.Context, event AuditEvent) error
	Close() error
}

// AuditEvent is one audit trail entry.
type AuditEvent struct {
	Kind     string `json:"kind"`
	Username string `json:"username,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	OK       bool   `json:"ok"`
}

// Metrics records domain counters for Prometheus export.
type Metrics interface {
	RecordFetch(rows int, ok bool)
	RecordRender(metric string)
	RecordLogin(ok bool)
	RecordRegistration(ok bool)
	RecordError(kind string)
}
