package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// InstrumentDB wraps a DBTX so every statement increments the database
// query counter, labelled with the statement verb and its target table.
func InstrumentDB(db DBTX) DBTX {
	return &instrumentedDB{db: db}
}

type instrumentedDB struct {
	db DBTX
}

func (d *instrumentedDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	countQuery(sql)
	return d.db.Exec(ctx, sql, args...)
}

func (d *instrumentedDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	countQuery(sql)
	return d.db.Query(ctx, sql, args...)
}

func (d *instrumentedDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	countQuery(sql)
	return d.db.QueryRow(ctx, sql, args...)
}

func countQuery(sql string) {
	verb, table := classifyStatement(sql)
	metrics.DBQueriesTotal.WithLabelValues(verb, table).Inc()
}

// classifyStatement extracts the statement verb and the table it targets:
// the token after INTO for inserts, after UPDATE for updates, and after
// the first FROM otherwise. Table aliases are not part of the token.
func classifyStatement(sql string) (string, string) {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "other", "unknown"
	}

	verb := strings.ToLower(fields[0])
	var marker string
	switch verb {
	case metrics.DBQuerySelect, metrics.DBQueryDelete:
		marker = "from"
	case metrics.DBQueryInsert:
		marker = "into"
	case metrics.DBQueryUpdate:
		if len(fields) > 1 {
			return verb, strings.ToLower(fields[1])
		}
		return verb, "unknown"
	default:
		return "other", "unknown"
	}

	for i, f := range fields {
		if strings.EqualFold(f, marker) && i+1 < len(fields) {
			return verb, strings.ToLower(fields[i+1])
		}
	}

	return verb, "unknown"
}
