package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Ping checks that the database is reachable within five seconds.
func (db *PostgresDB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the pool. Calling it more than once is a no-op.
func (db *PostgresDB) Close() error {
	if db.Pool == nil {
		return nil
	}

	log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	db.Pool = nil
	return nil
}

// PoolStats is a snapshot of the pool counters.
type PoolStats struct {
	AcquireCount         int64         `json:"acquire_count"`
	AcquireDuration      time.Duration `json:"acquire_duration"`
	AcquiredConns        int32         `json:"acquired_conns"`
	CanceledAcquireCount int64         `json:"canceled_acquire_count"`
	IdleConns            int32         `json:"idle_conns"`
	MaxConns             int32         `json:"max_conns"`
	TotalConns           int32         `json:"total_conns"`
}

// AvgAcquire is the mean time spent waiting for a connection.
func (s *PoolStats) AvgAcquire() time.Duration {
	return calculateAvgDuration(s.AcquireDuration, s.AcquireCount)
}

// Utilization is the share of MaxConns currently acquired, in percent.
func (s *PoolStats) Utilization() float64 {
	if s.MaxConns == 0 {
		return 0
	}
	return float64(s.AcquiredConns) / float64(s.MaxConns) * 100
}

func (db *PostgresDB) Stats() (*PoolStats, error) {
	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	raw := db.Pool.Stat()
	return &PoolStats{
		AcquireCount:         raw.AcquireCount(),
		AcquireDuration:      raw.AcquireDuration(),
		AcquiredConns:        raw.AcquiredConns(),
		CanceledAcquireCount: raw.CanceledAcquireCount(),
		IdleConns:            raw.IdleConns(),
		MaxConns:             raw.MaxConns(),
		TotalConns:           raw.TotalConns(),
	}, nil
}

func calculateAvgDuration(total time.Duration, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return total / time.Duration(count)
}

// MonitorPoolHealth logs a warning whenever the pool runs hot. It blocks until
// ctx is done.
func (db *PostgresDB) MonitorPoolHealth(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			stats, err := db.Stats()
			if err != nil {
				log.Warn().Err(err).Msg("pool stats unavailable")
				continue
			}
			if u := stats.Utilization(); u > 80 {
				log.Warn().Float64("utilization_pct", u).Int32("acquired", stats.AcquiredConns).Msg("high pool utilization")
			}
			if avg := stats.AvgAcquire(); avg > 100*time.Millisecond {
				log.Warn().Dur("avg_acquire", avg).Msg("high acquire latency")
			}
		case <-ctx.Done():
			return
		}
	}
}
