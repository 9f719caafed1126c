// Package sqlerr classifies errors coming out of gorm and the database drivers
// into the errs taxonomy.
package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"assettrack/internal/errs"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// MySQL server error numbers.
const (
	mysqlDupEntry              = 1062
	mysqlDupEntryWithKeyName   = 1586
	mysqlNoReferencedRow       = 1216
	mysqlRowIsReferenced       = 1217
	mysqlRowIsReferenced2      = 1451
	mysqlNoReferencedRow2      = 1452
	mysqlBadNull               = 1048
	mysqlNoDefaultForField     = 1364
	mysqlCheckConstraintFailed = 3819
)

// Postgres SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
	pgConnectionClass     = "08"
)

// Classify reports the kind matching err, or false if err is not recognised.
func Classify(err error) (errs.Kind, bool) {
	if err == nil {
		return errs.Unknown, false
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.NotFound, true
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errs.UniqueViolation, true
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return errs.ForeignKeyViolation, true
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return errs.ConstraintViolation, true
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return errs.TransactionFailure, true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return classifyMySQL(mysqlErr.Number)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr.Code)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return classifySQLite(sqliteErr)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.ConnectionFailure, true
	}

	// Deadlines and cancellation come from the caller, not the connection.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Unknown, false
	}

	var netErr net.Error
	switch {
	case errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.As(err, &netErr):
		return errs.ConnectionFailure, true
	}

	return errs.Unknown, false
}

func classifyMySQL(number uint16) (errs.Kind, bool) {
	switch number {
	case mysqlDupEntry, mysqlDupEntryWithKeyName:
		return errs.UniqueViolation, true
	case mysqlNoReferencedRow, mysqlRowIsReferenced, mysqlRowIsReferenced2, mysqlNoReferencedRow2:
		return errs.ForeignKeyViolation, true
	case mysqlBadNull, mysqlNoDefaultForField:
		return errs.NotNullViolation, true
	case mysqlCheckConstraintFailed:
		return errs.ConstraintViolation, true
	}
	return errs.Unknown, false
}

func classifyPostgres(code string) (errs.Kind, bool) {
	switch {
	case code == pgUniqueViolation:
		return errs.UniqueViolation, true
	case code == pgForeignKeyViolation:
		return errs.ForeignKeyViolation, true
	case code == pgNotNullViolation:
		return errs.NotNullViolation, true
	case code == pgCheckViolation, code == pgExclusionViolation:
		return errs.ConstraintViolation, true
	case strings.HasPrefix(code, pgConnectionClass):
		return errs.ConnectionFailure, true
	}
	return errs.Unknown, false
}

func classifySQLite(e sqlite3.Error) (errs.Kind, bool) {
	switch e.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return errs.UniqueViolation, true
	case sqlite3.ErrConstraintForeignKey:
		return errs.ForeignKeyViolation, true
	case sqlite3.ErrConstraintNotNull:
		return errs.NotNullViolation, true
	case sqlite3.ErrConstraintCheck:
		return errs.ConstraintViolation, true
	}
	switch e.Code {
	case sqlite3.ErrConstraint:
		return errs.ConstraintViolation, true
	case sqlite3.ErrCantOpen, sqlite3.ErrNotADB:
		return errs.ConnectionFailure, true
	}
	return errs.Unknown, false
}

// Translate converts err into an *errs.Error. Errors that already carry a
// kind, caller-input errors and unsupported-operation errors are returned
// unchanged. Anything else is classified, falling back to fallback when the
// driver error is not recognised.
func Translate(err error, fallback errs.Kind, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := errs.KindOf(err); ok {
		return err
	}
	if errs.IsInvalidArgument(err) || errors.Is(err, errors.ErrUnsupported) {
		return err
	}

	kind, ok := Classify(err)
	if !ok {
		kind = fallback
	}
	return errs.Wrap(kind, message, err)
}
