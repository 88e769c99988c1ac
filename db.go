package translatable

import (
	"database/sql"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewPostgresDB wraps an open postgres connection with the bun dialect the
// module's store expects. The upsert path relies on ON CONFLICT targets, which
// both supported dialects implement.
func NewPostgresDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, pgdialect.New())
}

// NewSQLiteDB wraps an open sqlite connection with the bun sqlite dialect.
func NewSQLiteDB(sqlDB *sql.DB) *bun.DB {
	return bun.NewDB(sqlDB, sqlitedialect.New())
}
