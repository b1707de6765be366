package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// retryPolicy bounds the startup wait for the database. Backoff doubles per
// attempt up to maxBackoff.
type retryPolicy struct {
	pingTimeout time.Duration
	maxAttempts int
	backoff     time.Duration
	maxBackoff  time.Duration
}

var startupRetryPolicy = retryPolicy{
	pingTimeout: 3 * time.Second,
	maxAttempts: 8,
	backoff:     250 * time.Millisecond,
	maxBackoff:  4 * time.Second,
}

// openDatabase opens a connection pool and waits for the instance to respond
// before handing it out.
func openDatabase(ctx context.Context, dsn string, logger zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := waitForDatabase(ctx, db, startupRetryPolicy, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func waitForDatabase(ctx context.Context, db *sql.DB, policy retryPolicy, logger zerolog.Logger) error {
	backoff := policy.backoff
	var lastErr error

	for attempt := 1; attempt <= policy.maxAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, policy.pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil || attempt == policy.maxAttempts {
			break
		}

		logger.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("database not ready, retrying")

		time.Sleep(backoff)
		backoff *= 2
		if backoff > policy.maxBackoff {
			backoff = policy.maxBackoff
		}
	}

	return fmt.Errorf("ping database: %w", lastErr)
}
