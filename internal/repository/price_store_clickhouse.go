package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domrepo "BetaPulse/internal/domain/repository"
	pkgch "BetaPulse/pkg/clickhouse"
	applogger "BetaPulse/pkg/logger"
)

// ClickHousePriceStore reads hourly candle closes from ClickHouse for
// deployments that keep raw candles in the warehouse instead of Redis.
type ClickHousePriceStore struct {
	db      *sql.DB
	dbName  string
	maxBars int
	l       *applogger.Logger
}

// NewClickHousePriceStore creates a warehouse-backed price store. maxBars
// caps how much history one query returns.
func NewClickHousePriceStore(ch *pkgch.Client, dbName string, maxBars int) *ClickHousePriceStore {
	if maxBars <= 0 {
		maxBars = 2160
	}
	return &ClickHousePriceStore{db: ch.DB(), dbName: dbName, maxBars: maxBars}
}

// SetLogger injects a structured logger.
func (s *ClickHousePriceStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHousePriceStore) GetCloses(ctx context.Context, symbol string, interval domrepo.Interval) ([]float64, error) {
	start := time.Now()
	table, err := s.tableForInterval(interval)
	if err != nil {
		return nil, err
	}

	const qtpl = `
        SELECT close
        FROM %s
        WHERE symbol = ?
        ORDER BY bucket DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, table)
	rows, err := s.db.QueryContext(ctx, q, symbol, s.maxBars)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse closes query error",
				applogger.String("table", table),
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get closes: %w", err)
	}
	defer rows.Close()

	tmp := make([]float64, 0, s.maxBars)
	for rows.Next() {
		var c float64
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan close: %w", err)
		}
		tmp = append(tmp, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if len(tmp) == 0 {
		return nil, domrepo.ErrNoData
	}

	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}

	if s.l != nil {
		s.l.Debug("clickhouse closes ok",
			applogger.String("table", table),
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(tmp)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return tmp, nil
}

func (s *ClickHousePriceStore) tableForInterval(iv domrepo.Interval) (string, error) {
	switch iv {
	case domrepo.Interval1h:
		return s.dbName + ".candles_1h", nil
	case domrepo.Interval1d:
		return s.dbName + ".candles_1d", nil
	default:
		return "", fmt.Errorf("unsupported interval: %s", iv)
	}
}

var _ domrepo.PriceStore = (*ClickHousePriceStore)(nil)
