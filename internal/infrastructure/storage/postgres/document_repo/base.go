// Package document_repo provides PostgreSQL implementations for document
// repositories. Documents are append-only events; none of these repos
// expose Update or Delete.
package document_repo

import (
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"

	"bahikhata/internal/infrastructure/storage/postgres"
)

// baseRepo holds the shared transaction manager and query builder.
type baseRepo struct {
	txm *postgres.TxManager
}

// builder returns a squirrel builder with PostgreSQL placeholder format.
func (r *baseRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
