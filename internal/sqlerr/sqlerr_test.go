package sqlerr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"assettrack/internal/errs"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"gorm record not found", gorm.ErrRecordNotFound, errs.NotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, errs.UniqueViolation},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, errs.ForeignKeyViolation},
		{"gorm check", gorm.ErrCheckConstraintViolated, errs.ConstraintViolation},
		{"gorm invalid transaction", gorm.ErrInvalidTransaction, errs.TransactionFailure},

		{"mysql duplicate entry", &mysql.MySQLError{Number: 1062}, errs.UniqueViolation},
		{"mysql row referenced", &mysql.MySQLError{Number: 1451}, errs.ForeignKeyViolation},
		{"mysql no referenced row", &mysql.MySQLError{Number: 1452}, errs.ForeignKeyViolation},
		{"mysql bad null", &mysql.MySQLError{Number: 1048}, errs.NotNullViolation},
		{"mysql check", &mysql.MySQLError{Number: 3819}, errs.ConstraintViolation},
		{"mysql invalid conn", mysql.ErrInvalidConn, errs.ConnectionFailure},

		{"postgres unique", &pgconn.PgError{Code: "23505"}, errs.UniqueViolation},
		{"postgres foreign key", &pgconn.PgError{Code: "23503"}, errs.ForeignKeyViolation},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, errs.NotNullViolation},
		{"postgres check", &pgconn.PgError{Code: "23514"}, errs.ConstraintViolation},
		{"postgres connection class", &pgconn.PgError{Code: "08006"}, errs.ConnectionFailure},

		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, errs.UniqueViolation},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, errs.UniqueViolation},
		{"sqlite foreign key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}, errs.ForeignKeyViolation},
		{"sqlite not null", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, errs.NotNullViolation},
		{"sqlite generic constraint", sqlite3.Error{Code: sqlite3.ErrConstraint}, errs.ConstraintViolation},
		{"sqlite cannot open", sqlite3.Error{Code: sqlite3.ErrCantOpen}, errs.ConnectionFailure},

		{"bad conn", driver.ErrBadConn, errs.ConnectionFailure},
		{"conn done", sql.ErrConnDone, errs.ConnectionFailure},
		{"net error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, errs.ConnectionFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := Classify(fmt.Errorf("wrapped: %w", tc.err))
			require.True(t, ok)
			assert.Equal(t, tc.want, kind)
		})
	}

	t.Run("Unrecognised", func(t *testing.T) {
		_, ok := Classify(errors.New("syntax error"))
		assert.False(t, ok)
		_, ok = Classify(&mysql.MySQLError{Number: 1064})
		assert.False(t, ok)
		_, ok = Classify(nil)
		assert.False(t, ok)
	})

	t.Run("Caller deadline is not a connection failure", func(t *testing.T) {
		_, ok := Classify(fmt.Errorf("query: %w", context.DeadlineExceeded))
		assert.False(t, ok)
		_, ok = Classify(&net.OpError{Op: "read", Net: "tcp", Err: context.DeadlineExceeded})
		assert.False(t, ok)
		_, ok = Classify(context.Canceled)
		assert.False(t, ok)
	})
}

func TestTranslate(t *testing.T) {
	t.Run("Classified driver error keeps its kind", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "23505"}
		err := Translate(cause, errs.TransactionFailure, "create user failed")

		assert.ErrorIs(t, err, errs.ErrUniqueViolation)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Unknown error uses fallback", func(t *testing.T) {
		cause := errors.New("disk I/O error")
		err := Translate(cause, errs.QueryFailure, "list assets failed")

		var e *errs.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errs.QueryFailure, e.Kind)
		assert.Equal(t, "list assets failed", e.Message)
		assert.Same(t, cause, e.Err)
	})

	t.Run("Typed errors pass through", func(t *testing.T) {
		notFound := errs.New(errs.NotFound, "user not found")
		assert.Same(t, notFound, Translate(notFound, errs.TransactionFailure, "update user failed"))

		invalid := errs.InvalidArgument("user id is required")
		assert.Equal(t, invalid, Translate(invalid, errs.QueryFailure, "x"))

		unsupported := errs.Unsupported("assets are immutable")
		assert.Equal(t, unsupported, Translate(unsupported, errs.TransactionFailure, "x"))
	})

	t.Run("Expired deadline uses fallback", func(t *testing.T) {
		err := Translate(context.DeadlineExceeded, errs.QueryFailure, "list users failed")

		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.QueryFailure, kind)
		assert.False(t, kind.Retryable())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, Translate(nil, errs.QueryFailure, "x"))
	})
}
