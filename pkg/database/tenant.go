package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

var schemaNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// WithTenantSchema executes a function with schema-based tenant
// isolation.
//
// Usage in repositories:
//
//	schema, err := tenant.TenantSchema(ctx)
//	if err != nil { return err }
//	err = r.db.WithTenantSchema(ctx, schema, func(ctx context.Context) error {
//	    return r.db.GetContext(ctx, &rec, "SELECT * FROM cv_extractions WHERE id = $1", id)
//	})
//
// How it works:
//  1. Starts a transaction
//  2. Sets "SET LOCAL search_path TO <tenant_schema>, public"
//  3. Stores the transaction in the context so the tx-aware query
//     methods below route through it
//  4. Commits, which also clears the session variable
//
// SET LOCAL is scoped to the transaction, so pooled connections hand
// back clean state even under PgBouncer.
func (db *DB) WithTenantSchema(ctx context.Context, schema string, fn func(context.Context) error) error {
	if !schemaNameRe.MatchString(schema) {
		return fmt.Errorf("invalid tenant schema name %q", schema)
	}
	return db.Transaction(ctx, func(tx *sqlx.Tx) error {
		// SET LOCAL doesn't support bind parameters; the schema name is
		// validated against a strict identifier pattern above.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", schema)); err != nil {
			return fmt.Errorf("failed to set search_path to %s: %w", schema, err)
		}

		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// getTx extracts transaction from context if present
func (db *DB) getTx(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}

// GetContext routes through the context transaction when inside
// WithTenantSchema, falling back to the pool otherwise.
func (db *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if tx := db.getTx(ctx); tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return db.DB.GetContext(ctx, dest, query, args...)
}

// SelectContext routes through the context transaction when present.
func (db *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if tx := db.getTx(ctx); tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return db.DB.SelectContext(ctx, dest, query, args...)
}

// ExecContext routes through the context transaction when present.
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if tx := db.getTx(ctx); tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return db.DB.ExecContext(ctx, query, args...)
}

// QueryRowxContext routes through the context transaction when present.
func (db *DB) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	if tx := db.getTx(ctx); tx != nil {
		return tx.QueryRowxContext(ctx, query, args...)
	}
	return db.DB.QueryRowxContext(ctx, query, args...)
}

// NamedExecContext routes through the context transaction when present.
func (db *DB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	if tx := db.getTx(ctx); tx != nil {
		return tx.NamedExecContext(ctx, query, arg)
	}
	return db.DB.NamedExecContext(ctx, query, arg)
}
