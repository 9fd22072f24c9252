// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/gs-backend/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx, so the same queries
// run inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getOne runs a query expected to return exactly one row and scans it into T
// by column name. A missing row is tagged with table for the 404 message.
func getOne[T any](ctx context.Context, db Querier, table, query string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return nil, sqlerr.WrapNoRows(table, err)
		}
		return nil, fmt.Errorf("failed to collect row from %s: %w", table, err)
	}

	return item, nil
}

// getMany scans every row into T. It never returns a nil slice, so empty
// lists encode as [].
func getMany[T any](ctx context.Context, db Querier, table, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from %s: %w", table, err)
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db Querier, table, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WrapNoRows(table, pgx.ErrNoRows)
	}
	return nil
}
