// Package database is the storage gateway for the todo core: parameterized
// queries against the users, sessions and todo tables, returning typed rows
// or the typed errors defined in errors.go. No business logic lives here.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const dbName = "nekotodo"

// DB wraps the shared connection pool. The zero value is not usable; build
// one with Open. DB is safe for concurrent use and cheap to share by
// pointer — all state lives in the pool and the database itself.
type DB struct {
	pool       *sql.DB
	sessionTTL time.Duration
}

// Open connects to the nekotodo database and verifies the connection.
// sessionTTL is the lifetime stamped onto every session row this gateway
// inserts.
func Open(host, user, pass string, sessionTTL time.Duration) (*DB, error) {
	cfg := mysql.Config{
		User:      user,
		Passwd:    pass,
		Net:       "tcp",
		Addr:      host,
		DBName:    dbName,
		ParseTime: true,
		Loc:       time.Local,
	}

	pool, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(3)
	pool.SetConnMaxLifetime(30 * time.Minute)

	// Fast fail if unreachable.
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{pool: pool, sessionTTL: sessionTTL}, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.pool.Close()
}

// InitSchema ensures the three core tables exist. Intended for first-run
// setup; every statement is idempotent.
func (db *DB) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			name VARCHAR(64) PRIMARY KEY,
			password VARCHAR(255) NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id CHAR(36) PRIMARY KEY,
			user_name VARCHAR(64) NOT NULL,
			expired TIMESTAMP NOT NULL,
			FOREIGN KEY (user_name) REFERENCES users(name)
		);`,
		`CREATE TABLE IF NOT EXISTS todo (
			id INT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_name VARCHAR(64) NOT NULL,
			title VARCHAR(255) NOT NULL,
			work TEXT NULL,
			update_date DATE NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			done BOOLEAN NOT NULL DEFAULT FALSE,
			FOREIGN KEY (user_name) REFERENCES users(name)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
