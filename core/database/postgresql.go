package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/constants"
	"meeting-scheduler/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	NamedQueryContext(ctx context.Context, query string, arg any) (*sqlx.Rows, error)
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	Ping(ctx context.Context) error
	Close() error
	SQLx() *sqlx.DB
}

type Database struct {
	sqlx *sqlx.DB
}

var _ IDatabase = (*Database)(nil)

// New wraps an existing connection, mostly for tests.
func New(db *sqlx.DB) *Database {
	return &Database{sqlx: db}
}

func DSN(cfg config.DatabaseConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = constants.DatabaseSSLMode
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode, cfg.ConnectTimeout)
}

func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	logger.Info("Initializing database...")

	sqlxDB, err := sqlx.ConnectContext(ctx, "postgres", DSN(cfg))
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	maxOpen := orDefault(cfg.MaxOpenConns, constants.DatabaseMaxOpenConns)
	maxIdle := orDefault(cfg.MaxIdleConns, constants.DatabaseMaxIdleConns)
	lifetime := orDefault(cfg.ConnMaxLifetime, constants.DatabaseConnMaxLifetime)

	sqlxDB.SetMaxOpenConns(maxOpen)
	sqlxDB.SetMaxIdleConns(maxIdle)
	sqlxDB.SetConnMaxLifetime(time.Duration(lifetime) * time.Minute)

	if err = sqlxDB.PingContext(ctx); err != nil {
		logger.Error("Failed to ping database", "error", err)
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database initialized successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"user", cfg.User,
		"maxOpenConns", maxOpen,
		"maxIdleConns", maxIdle,
		"connMaxLifetime", lifetime,
	)

	return &Database{sqlx: sqlxDB}, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) error {
	_, err := d.sqlx.ExecContext(ctx, query, args...)
	return err
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) NamedQueryContext(ctx context.Context, query string, arg any) (*sqlx.Rows, error) {
	return d.sqlx.NamedQueryContext(ctx, query, arg)
}

func (d *Database) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	return d.sqlx.NamedExecContext(ctx, query, arg)
}

// WithTx runs fn inside a transaction, rolling back when fn returns an error.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := d.sqlx.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Database:WithTx:Rollback", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.sqlx.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.sqlx.Close()
}

func (d *Database) SQLx() *sqlx.DB {
	return d.sqlx
}
