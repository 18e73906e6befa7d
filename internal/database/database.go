package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver

	appconfig "github.com/moremori/moremori-api/internal/config"
)

// Pair bundles the two credentialed database handles. Read is connected with
// the restricted role and must serve every SELECT; Write is connected with the
// privileged role and must serve every INSERT/UPDATE/DELETE. Repositories
// never swap them.
type Pair struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// ConnectPair opens both handles from the configuration. On any failure the
// already-open handle is closed before returning.
func ConnectPair(cfg *appconfig.DatabaseConfig) (*Pair, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	read, err := connect(cfg, cfg.ReadUser, cfg.ReadPassword)
	if err != nil {
		return nil, fmt.Errorf("read handle: %w", err)
	}

	write, err := connect(cfg, cfg.WriteUser, cfg.WritePassword)
	if err != nil {
		_ = read.Close()
		return nil, fmt.Errorf("write handle: %w", err)
	}

	return &Pair{Read: read, Write: write}, nil
}

// Close closes both handles.
func (p *Pair) Close() error {
	var errRead, errWrite error
	if p.Read != nil {
		errRead = p.Read.Close()
	}
	if p.Write != nil {
		errWrite = p.Write.Close()
	}
	if errRead != nil {
		return errRead
	}
	return errWrite
}

// connect establishes a PostgreSQL connection for one role. It applies a small
// retry strategy to handle transient bootstrapping issues (e.g., pooler
// warming up). The returned *sqlx.DB has pool settings pre-configured and is
// pinged before returning.
func connect(cfg *appconfig.DatabaseConfig, user, password string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(user), url.QueryEscape(password), cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)

	// Retry policy: up to 5 attempts, exponential backoff starting at 500ms.
	const (
		maxAttempts = 5
		baseDelay   = 500 * time.Millisecond
	)

	var db *sqlx.DB
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, lastErr = sqlx.Open("postgres", dsn)
		if lastErr != nil {
			// Wait then retry opening.
			sleepWithBackoff(attempt, baseDelay)
			continue
		}

		// Pool settings
		setPool(db.DB)

		// Ping with timeout to validate the connection.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		lastErr = db.PingContext(ctx)
		cancel()
		if lastErr == nil {
			return db, nil
		}

		// Close and retry on ping failure.
		_ = db.Close()
		sleepWithBackoff(attempt, baseDelay)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, lastErr)
}

// setPool configures the connection pool for the database.
func setPool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

// sleepWithBackoff sleeps for an exponentially increasing duration.
func sleepWithBackoff(attempt int, base time.Duration) {
	// Simple exponential backoff: base * 2^(attempt-1), capped to 5s.
	d := base << (attempt - 1)
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	time.Sleep(d)
}
