package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assettrack/internal/errs"
	"assettrack/internal/sqlerr"

	"gorm.io/gorm"
)

// unitOfWork scopes one DAO call to a session on the shared pool.
type unitOfWork struct {
	db       *gorm.DB
	entity   string
	observer Observer
}

func newUnitOfWork(db *gorm.DB, entity string, opts []Option) unitOfWork {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return unitOfWork{db: db, entity: entity, observer: o.observer}
}

// read runs fn on a session without a transaction. Unclassified failures
// become QUERY_FAILURE.
func (u unitOfWork) read(ctx context.Context, op, message string, fn func(db *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() { u.observe(op, err, start) }()
	defer recoverUnknown(&err, message)

	err = fn(u.db.WithContext(ctx))
	return sqlerr.Translate(err, errs.QueryFailure, message)
}

// write runs fn in a single transaction. gorm rolls back when fn returns an
// error or panics. Unclassified failures become TRANSACTION_FAILURE.
func (u unitOfWork) write(ctx context.Context, op, message string, fn func(tx *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() { u.observe(op, err, start) }()
	defer recoverUnknown(&err, message)

	err = u.db.WithContext(ctx).Transaction(fn)
	return sqlerr.Translate(err, errs.TransactionFailure, message)
}

func (u unitOfWork) observe(op string, err error, start time.Time) {
	if u.observer != nil {
		u.observer.ObserveDAO(u.entity, op, outcome(err), time.Since(start))
	}
}

func recoverUnknown(err *error, message string) {
	if r := recover(); r != nil {
		*err = errs.Wrap(errs.Unknown, message, fmt.Errorf("panic: %v", r))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, errors.ErrUnsupported):
		return "unsupported"
	}
	kind, _ := errs.KindOf(err)
	return strings.ToLower(kind.String())
}

func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.NotFound, message)
	}
	return err
}
