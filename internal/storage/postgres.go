package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresKV stores blobs in a PostgreSQL table.
type PostgresKV struct {
	DB *sqlx.DB
}

type blobRow struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewPostgresKV connects and makes sure the blobs table exists.
func NewPostgresKV(connectionString string) (*PostgresKV, error) {
	db, err := sqlx.Connect("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS greenpatch_blobs (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create blobs table: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL!")
	return &PostgresKV{DB: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row blobRow
	err := p.DB.GetContext(ctx, &row, "SELECT key, value, updated_at FROM greenpatch_blobs WHERE key = $1", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	return row.Value, true, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.DB.NamedExecContext(ctx, `INSERT INTO greenpatch_blobs (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		blobRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to write %s: %v", key, err)
	}
	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	_, err := p.DB.ExecContext(ctx, "DELETE FROM greenpatch_blobs WHERE key = $1", key)
	return err
}

func (p *PostgresKV) Close(context.Context) error {
	return p.DB.Close()
}
