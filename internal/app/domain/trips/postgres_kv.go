package trips

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const kvTable = "kv_store"

// DB is the subset of a pgx pool PostgresKV uses.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresKV stores values as JSONB rows of the kv_store table.
type PostgresKV struct {
	db     DB
	sb     sq.StatementBuilderType
	logger *zap.Logger
}

var _ KVStore = (*PostgresKV)(nil)

func NewPostgresKV(db DB, logger *zap.Logger) *PostgresKV {
	return &PostgresKV{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
	}
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "PostgresKV.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("kv.key", key),
	))
	defer span.End()

	query, args, err := p.sb.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build kv select: %w", err)
	}

	var value []byte
	err = p.db.QueryRow(ctx, query, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetAttributes(attribute.Bool("kv.found", false))
		return nil, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read key")
		p.logger.Error("Failed to read kv entry", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("read key %q: %w", key, err)
	}

	span.SetAttributes(attribute.Bool("kv.found", true))
	return value, true, nil
}

func (p *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := otel.Tracer("TripsRepository").Start(ctx, "PostgresKV.Set", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("kv.key", key),
		attribute.Int("kv.value_size", len(value)),
	))
	defer span.End()

	query, args, err := p.sb.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, sq.Expr("NOW()")).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build kv upsert: %w", err)
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to write key")
		p.logger.Error("Failed to write kv entry", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}
