package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ariefcatur/go-shop-backend.git/internal/apperr"
)

// Postgres error codes the handlers care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNumericOutOfRange   = "22003"
)

// TranslateError maps driver-level failures onto the app error taxonomy.
// Errors that are already part of the taxonomy pass through unchanged.
func TranslateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return &apperr.ConflictError{Msg: "duplicate detected"}
		case codeForeignKeyViolation:
			return &apperr.ReferenceError{Msg: "invalid product reference"}
		case codeNumericOutOfRange:
			return &apperr.ValidationError{Msg: "invalid numeric value"}
		}
	}
	return &apperr.StorageError{Err: err}
}
