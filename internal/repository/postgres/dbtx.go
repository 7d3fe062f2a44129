package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dtroode/autocompany-server/internal/model"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func queryList[T any](ctx context.Context, db DBTX, query string, scan func(rowScanner) (T, error), args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// execAffecting runs query and returns ErrNotFound when it touched no rows.
func execAffecting(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}

	return nil
}

func getRow[T any](ctx context.Context, db DBTX, table, query string, scan func(rowScanner) (T, error), key any) (T, error) {
	item, err := scan(db.QueryRowContext(ctx, query, key))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s: %w", table, classify(err, table))
	}
	return item, nil
}

func listRows[T any](ctx context.Context, db DBTX, table, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	items, err := queryList(ctx, db, query, scan)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return items, nil
}

func deleteRow(ctx context.Context, db DBTX, table, query string, key any) error {
	if err := execAffecting(ctx, db, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", table, classify(err, table))
	}
	return nil
}
