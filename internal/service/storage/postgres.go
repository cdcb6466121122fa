package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/constants"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// PostgresStore keeps key/value rows in a single table.
type PostgresStore struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

func NewPostgresStore(ctx context.Context, cfg PostgresConfig, logger *zap.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, constants.StorageConfig.DialTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to ping postgres", "ping", "", err)
	}

	store := &PostgresStore{
		db:     db,
		table:  constants.StorageConfig.PostgresTable,
		logger: logger,
	}
	if err := store.ensureSchema(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return store, nil
}

func (p *PostgresStore) ensureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return apperrors.NewStorageError("failed to create table", "migrate", p.table, err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1 LIMIT 1`, p.table)

	var value string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		p.logger.Error("Postgres get failed", zap.String("key", key), zap.Error(err))
		return nil, false, apperrors.NewStorageError("get failed", "get", key, err)
	}
	return []byte(value), true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, p.table)

	if _, err := p.db.ExecContext(ctx, query, key, string(value)); err != nil {
		p.logger.Error("Postgres set failed", zap.String("key", key), zap.Error(err))
		return apperrors.NewStorageError("set failed", "set", key, err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
