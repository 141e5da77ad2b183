package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"LiquiDash/internal/domain/models"
	domrepo "LiquiDash/internal/domain/repository"
	applogger "LiquiDash/pkg/logger"
)

// CHRecordStore implements RecordStore backed by ClickHouse. The
// liquidity table is a write-only audit trail: it is replaced wholesale
// at startup and never read on the serving path.
type CHRecordStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHRecordStore(db *sql.DB, table string) *CHRecordStore {
	return &CHRecordStore{db: db, table: table}
}

// SetLogger injects a structured logger.
func (s *CHRecordStore) SetLogger(l *applogger.Logger) { s.l = l }

// ReplaceAll truncates the table and inserts the records in chunks.
// Delete and insert are not one transaction; a concurrent reader may see
// zero or partial rows during the window. Acceptable for a single
// instance since nothing reads the table under load.
func (s *CHRecordStore) ReplaceAll(ctx context.Context, records []models.LiquidityRecord) error {
	start := time.Now()

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", s.table)); err != nil {
		return fmt.Errorf("truncate %s: %w", s.table, err)
	}

	const chunkSize = 2000
	for lo := 0; lo < len(records); lo += chunkSize {
		hi := lo + chunkSize
		if hi > len(records) {
			hi = len(records)
		}

		values := make([]string, 0, hi-lo)
		args := make([]interface{}, 0, (hi-lo)*9)
		for _, r := range records[lo:hi] {
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				r.EndOfDate,
				r.OpeningBalance,
				r.ClosingBalance,
				r.ForecastAggregateBalT1,
				r.ForecastAggregateBalT2,
				r.ForecastAggregateBalT3,
				r.ForecastAggregateBalT4,
				r.ForecastAggregateBalU,
				time.Now(),
			)
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (end_of_date, opening_balance, closing_balance, forecast_aggregate_bal_t1, forecast_aggregate_bal_t2, forecast_aggregate_bal_t3, forecast_aggregate_bal_t4, forecast_aggregate_bal_u, fetched_at) VALUES %s",
			s.table, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse replace_all insert error",
					applogger.String("table", s.table),
					applogger.Int("offset", lo),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert records: %w", err)
		}
	}

	if s.l != nil {
		s.l.Info("clickhouse replace_all ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(records)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

func (s *CHRecordStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ domrepo.RecordStore = (*CHRecordStore)(nil)
