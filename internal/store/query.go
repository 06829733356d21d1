package store

import (
	"context"
	"database/sql"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// stmt renders SQLite statements. The rendered query and arguments are run
// through sqlx, which scans rows into the tagged row structs.
var stmt = entsql.Dialect(dialect.SQLite)

func selectRows(ctx context.Context, q sqlx.QueryerContext, dest any, b entsql.Querier) error {
	query, args := b.Query()
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

func getRow(ctx context.Context, q sqlx.QueryerContext, dest any, b entsql.Querier) error {
	query, args := b.Query()
	return sqlx.GetContext(ctx, q, dest, query, args...)
}

func execStmt(ctx context.Context, e sqlx.ExecerContext, b entsql.Querier) (sql.Result, error) {
	query, args := b.Query()
	return e.ExecContext(ctx, query, args...)
}
