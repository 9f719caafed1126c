package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", NotFound.String())
	assert.Equal(t, "FOREIGN_KEY_VIOLATION", ForeignKeyViolation.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	for _, k := range []Kind{ConstraintViolation, UniqueViolation, ForeignKeyViolation, NotNullViolation} {
		assert.True(t, k.IsConstraint(), k.String())
		assert.False(t, k.Retryable(), k.String())
	}
	assert.False(t, NotFound.IsConstraint())
	assert.True(t, ConnectionFailure.Retryable())
	assert.False(t, QueryFailure.Retryable())
}

func TestError(t *testing.T) {
	cause := errors.New("driver: bad things")
	err := Wrap(QueryFailure, "list users failed", cause)

	t.Run("Message includes kind and cause", func(t *testing.T) {
		assert.Equal(t, "QUERY_FAILURE: list users failed: driver: bad things", err.Error())
		assert.Equal(t, "NOT_FOUND: user not found", New(NotFound, "user not found").Error())
	})

	t.Run("Is matches on kind", func(t *testing.T) {
		wrapped := fmt.Errorf("service: %w", err)
		assert.ErrorIs(t, wrapped, ErrQueryFailure)
		assert.NotErrorIs(t, wrapped, ErrNotFound)
		assert.ErrorIs(t, wrapped, cause)
	})

	t.Run("KindOf", func(t *testing.T) {
		kind, ok := KindOf(fmt.Errorf("outer: %w", New(UniqueViolation, "dup")))
		assert.True(t, ok)
		assert.Equal(t, UniqueViolation, kind)

		_, ok = KindOf(cause)
		assert.False(t, ok)
	})

	t.Run("Invalid argument stays outside the taxonomy", func(t *testing.T) {
		err := InvalidArgument("user id is required")
		assert.True(t, IsInvalidArgument(err))
		assert.EqualError(t, err, "invalid argument: user id is required")
		_, ok := KindOf(err)
		assert.False(t, ok)
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid argument", InvalidArgument("email is required"), http.StatusBadRequest},
		{"unsupported", Unsupported("assets are immutable"), http.StatusMethodNotAllowed},
		{"not found", New(NotFound, "asset not found"), http.StatusNotFound},
		{"unique", New(UniqueViolation, "dup"), http.StatusConflict},
		{"foreign key", New(ForeignKeyViolation, "fk"), http.StatusConflict},
		{"connection", New(ConnectionFailure, "down"), http.StatusServiceUnavailable},
		{"transaction", New(TransactionFailure, "tx"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "user not found", PublicMessage(New(NotFound, "user not found")))
	assert.Equal(t, "Internal Server Error", PublicMessage(Wrap(TransactionFailure, "create user failed", errors.New("secret"))))
	assert.Equal(t, "assets are immutable: unsupported operation", PublicMessage(Unsupported("assets are immutable")))
}
