package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/roleready/roleready-api/pkg/errors"
	"github.com/roleready/roleready-api/pkg/logger"
	"github.com/roleready/roleready-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgInvalidText         = "22P02"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner is satisfied by *pgxpool.Pool
type TxBeginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// mapError turns driver errors into domain errors for resource
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundError(resource)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ConflictError(resource + " already exists")
		case pgForeignKeyViolation:
			return apperrors.InvalidInputError(resource, "references a missing record")
		case pgInvalidText:
			return apperrors.InvalidInputError(resource, "malformed identifier")
		}
	}
	return err
}

// observe records metrics and a debug log for one database operation
func observe(operation string, start time.Time, err error, fields ...zap.Field) {
	metrics.ObserveDB(operation, start, err)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.LogAPICall("postgres", operation, "error", metrics.MeasureDuration(start), append(fields, zap.Error(err))...)
	}
}

// execOne runs a single-row statement and reports a missing row as not found
func execOne(ctx context.Context, db Querier, operation, resource, query string, args ...any) error {
	start := time.Now()
	tag, err := db.Exec(ctx, query, args...)
	observe(operation, start, err)
	if err != nil {
		return mapError(err, resource)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFoundError(resource)
	}
	return nil
}

// filterBuilder accumulates WHERE conditions with numbered placeholders.
// Every "?" in a condition is bound to the same argument.
type filterBuilder struct {
	conds []string
	args  []any
}

func (b *filterBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(b.args))))
}

func (b *filterBuilder) addRaw(cond string) {
	b.conds = append(b.conds, cond)
}

// arg binds a value and returns its placeholder
func (b *filterBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *filterBuilder) where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// likePattern builds a case-insensitive contains pattern with LIKE
// metacharacters escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}

// setBuilder accumulates SET assignments for partial updates
type setBuilder struct {
	sets []string
	args []any
}

func (s *setBuilder) set(column string, v any) {
	s.args = append(s.args, v)
	s.sets = append(s.sets, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setBuilder) empty() bool {
	return len(s.sets) == 0
}

// sql renders "UPDATE table SET ..., updated_at = NOW() WHERE id = $n"
func (s *setBuilder) sql(table, id string) (string, []any) {
	args := append(s.args, id)
	return fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d",
		table, strings.Join(s.sets, ", "), len(args)), args
}
