package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bespokesol/catalog/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	queryTimeout       = 3 * time.Second
	uniqueViolationSQL = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationSQL {
		return &DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return err
}

func encodeProductIDs(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal product ids: %w", err)
	}
	return string(data), nil
}

func decodeProductIDs(raw string) ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: product_ids: %v", ErrCorruptRecord, err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func parseDecimal(column, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, column, err)
	}
	return d, nil
}

func activeFlag(s *models.Status) *bool {
	if s == nil {
		return nil
	}
	active := s.IsActive()
	return &active
}

// countRows runs a COUNT(*) version of a list query.
func countRows(ctx context.Context, db Querier, b sq.SelectBuilder) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int
	if err := db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, translateError(err)
	}
	return total, nil
}
