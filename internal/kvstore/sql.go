package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartisp.net/console/pkg/database"
)

// SQLStore keeps values in the kv_store table created by the database migrations.
type SQLStore struct {
	db     *sql.DB
	getSQL string
	setSQL string
	delSQL string
}

// NewSQLStore picks placeholder syntax for driver ("postgres" or "sqlite").
func NewSQLStore(db *sql.DB, driver string) (*SQLStore, error) {
	var p1, p2 string
	switch driver {
	case database.DriverPostgres:
		p1, p2 = "$1", "$2"
	case database.DriverSQLite:
		p1, p2 = "?", "?"
	default:
		return nil, fmt.Errorf("kvstore: unsupported driver %q", driver)
	}

	return &SQLStore{
		db:     db,
		getSQL: "SELECT value FROM kv_store WHERE key = " + p1,
		setSQL: "INSERT INTO kv_store (key, value, updated_at) VALUES (" + p1 + ", " + p2 + ", CURRENT_TIMESTAMP) " +
			"ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP",
		delSQL: "DELETE FROM kv_store WHERE key = " + p1,
	}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.getSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.setSQL, key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.delSQL, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
