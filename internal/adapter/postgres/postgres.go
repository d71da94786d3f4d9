// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			age INTEGER,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			log_date DATE NOT NULL,
			steps INTEGER CHECK(steps >= 0),
			exercise_minutes INTEGER CHECK(exercise_minutes >= 0),
			sleep_hours DOUBLE PRECISION CHECK(sleep_hours >= 0 AND sleep_hours <= 24),
			water_liters DOUBLE PRECISION CHECK(water_liters >= 0 AND water_liters <= 10),
			diet_score INTEGER CHECK(diet_score >= 0 AND diet_score <= 10),
			mood INTEGER CHECK(mood >= 0 AND mood <= 10),
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (user_id, log_date)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_daily_logs_log_date ON daily_logs(log_date);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. The (user_id, log_date) primary key and the users.email unique
// index are the authoritative duplicate guards; conflicts are detected here
// rather than trusted to a preceding existence check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
