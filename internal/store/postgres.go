package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// NewPostgres connects with a lib/pq DSN and creates the blobs table.
func NewPostgres(ctx context.Context, dsn string) (Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("empty postgres dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(blobsTable, "BYTEA")); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare database: %w", err)
	}

	return &sqlStore{
		db:     db,
		getSQL: `SELECT value FROM blobs WHERE key = $1`,
		putSQL: `INSERT INTO blobs (key, value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		delSQL:  `DELETE FROM blobs WHERE key = $1`,
		nowFunc: time.Now,
	}, nil
}
