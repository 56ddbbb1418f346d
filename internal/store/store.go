// Package store is a small table-oriented client over the hosted postgres
// database: select, insert, update and delete on whitelisted tables, with
// rows decoded straight into model structs.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/qiniu/x/xlog"

	"interview-portal/internal/metrics"
)

var ErrNotFound = errors.New("store: not found")

// DB is the part of *pgxpool.Pool the store uses.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Store struct {
	db DB
	xl *xlog.Logger
}

func New(db DB) *Store {
	return &Store{db: db, xl: xlog.New("store")}
}

func (q *Query) query(ctx context.Context, action, sql string, args []any) (pgx.Rows, error) {
	metrics.StoreQueries.WithLabelValues(q.table, action).Inc()
	q.s.xl.Debugf("%s %s: %s", action, q.table, sql)
	rows, err := q.s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, q.table, err)
	}
	return rows, nil
}

// All runs the select and decodes every row into T by column name. Fields
// of T with no matching column keep their zero value.
func All[T any](ctx context.Context, q *Query) ([]T, error) {
	sql, args, err := q.selectSQL()
	if err != nil {
		return nil, err
	}
	rows, err := q.query(ctx, "select", sql, args)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", q.table, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Single expects exactly one row. No row is ErrNotFound.
func Single[T any](ctx context.Context, q *Query) (T, error) {
	var zero T
	sql, args, err := q.Limit(2).selectSQL()
	if err != nil {
		return zero, err
	}
	rows, err := q.query(ctx, "select", sql, args)
	if err != nil {
		return zero, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return zero, ErrNotFound
	case err != nil:
		return zero, fmt.Errorf("select %s: %w", q.table, err)
	}
	return v, nil
}

// Insert writes one row and returns it as stored.
func Insert[T any](ctx context.Context, q *Query, values map[string]any) (T, error) {
	var zero T
	sql, args, err := q.insertSQL(values)
	if err != nil {
		return zero, err
	}
	rows, err := q.query(ctx, "insert", sql, args)
	if err != nil {
		return zero, err
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", q.table, err)
	}
	return v, nil
}

// Update applies values to the rows matched by Eq and returns the first one.
// Nothing matched is ErrNotFound.
func Update[T any](ctx context.Context, q *Query, values map[string]any) (T, error) {
	var zero T
	sql, args, err := q.updateSQL(values)
	if err != nil {
		return zero, err
	}
	rows, err := q.query(ctx, "update", sql, args)
	if err != nil {
		return zero, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", q.table, err)
	}
	if len(out) == 0 {
		return zero, ErrNotFound
	}
	return out[0], nil
}

// Delete removes the rows matched by Eq. Nothing matched is ErrNotFound.
func (q *Query) Delete(ctx context.Context) error {
	sql, args, err := q.deleteSQL()
	if err != nil {
		return err
	}
	metrics.StoreQueries.WithLabelValues(q.table, "delete").Inc()
	tag, err := q.s.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete %s: %w", q.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
