package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL, которые переводятся в доменные ошибки.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func isUniqueViolation(err error) bool {
	return isPgErrCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return isPgErrCode(err, pgForeignKeyViolation)
}

func isCheckViolation(err error) bool {
	return isPgErrCode(err, pgCheckViolation)
}
